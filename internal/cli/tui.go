package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spritestrip/pkg/batch"
	"github.com/matzehuels/spritestrip/pkg/manifest"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// JobPickerModel - Interactive job selection
// =============================================================================

// JobPickerModel is the bubbletea model for choosing manifest jobs to run.
// All jobs start checked.
type JobPickerModel struct {
	Jobs      []manifest.Job
	Checked   []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewJobPickerModel creates a picker over jobs.
func NewJobPickerModel(jobs []manifest.Job) JobPickerModel {
	checked := make([]bool, len(jobs))
	for i := range checked {
		checked[i] = true
	}
	return JobPickerModel{
		Jobs:    jobs,
		Checked: checked,
		Height:  15,
	}
}

// Selected returns the names of the checked jobs, in manifest order.
// It is nil unless the selection was confirmed.
func (m JobPickerModel) Selected() []string {
	if !m.Confirmed {
		return nil
	}
	var names []string
	for i, job := range m.Jobs {
		if m.Checked[i] {
			names = append(names, job.Name)
		}
	}
	return names
}

func (m JobPickerModel) Init() tea.Cmd {
	return nil
}

func (m JobPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Jobs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Checked) > 0 {
				m.Checked = toggled(m.Checked, m.Cursor)
			}
		case "a":
			all := m.count() < len(m.Jobs)
			checked := make([]bool, len(m.Checked))
			for i := range checked {
				checked[i] = all
			}
			m.Checked = checked
		case "enter":
			if m.count() == 0 {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// toggled returns a copy of checked with index i flipped, so earlier model
// values stay unchanged.
func toggled(checked []bool, i int) []bool {
	out := make([]bool, len(checked))
	copy(out, checked)
	out[i] = !out[i]
	return out
}

func (m JobPickerModel) count() int {
	n := 0
	for _, c := range m.Checked {
		if c {
			n++
		}
	}
	return n
}

func (m JobPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Jobs"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ run  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Jobs))
	for i := m.Offset; i < end; i++ {
		job := m.Jobs[i]
		box := "[ ]"
		if m.Checked[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %-9s %s", box, job.Kind, job.Name)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		case m.Checked[i]:
			b.WriteString(listNormalStyle.Render("  " + line))
		default:
			b.WriteString(listDimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", m.count(), len(m.Jobs))))
	return b.String()
}

// =============================================================================
// Batch Summary
// =============================================================================

// renderSummary renders one table row per job result.
func renderSummary(report *batch.Report) string {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		size := "—"
		if r.Width > 0 {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		took := "—"
		if r.Duration > 0 {
			took = r.Duration.Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			r.Job.Name,
			string(r.Job.Kind),
			statusLabel(r.Status),
			size,
			filepath.Base(r.Output),
			took,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Job", "Kind", "Status", "Size", "Output", "Took").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 3 || col == 5 {
				return cellStyle.Foreground(colorGray)
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s succeeded  %s failed  %s cached  %s",
		StyleSuccess.Render(fmt.Sprint(report.Succeeded())),
		failedCount(report.Failed()),
		StyleNumber.Render(fmt.Sprint(report.Cached())),
		StyleDim.Render("run "+report.RunID+" in "+report.Duration.Round(time.Millisecond).String())))
	return b.String()
}

func failedCount(n int) string {
	if n == 0 {
		return StyleDim.Render("0")
	}
	return StyleFailure.Render(fmt.Sprint(n))
}
