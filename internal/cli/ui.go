package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spritestrip/pkg/batch"
	"github.com/matzehuels/spritestrip/pkg/errors"
)

// Output streams. Tests swap these out.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleFailure for failed jobs.
	StyleFailure = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSkipped = "–"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stderr, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Job Results
// =============================================================================

// printResult prints the outcome of a single job.
func printResult(r batch.Result) {
	switch r.Status {
	case batch.StatusFailed:
		printError("%s failed", r.Job.Name)
		if r.Err != nil {
			printDetail("%s", errors.UserMessage(r.Err))
		}
		return
	case batch.StatusSkipped:
		printWarning("%s skipped", r.Job.Name)
		if r.Err != nil {
			printDetail("%s", errors.UserMessage(r.Err))
		}
		return
	case batch.StatusPlanned:
		printInfo("%s would write", r.Job.Name)
	default:
		printSuccess("%s", r.Job.Name)
	}
	printFile(r.Output)
	printStats(r)
}

// printStats prints image dimensions and cache status on one line.
func printStats(r batch.Result) {
	parts := []string{
		fmt.Sprintf("%dx%d", r.Width, r.Height),
		formatBytes(r.Bytes),
	}
	status := styleComputed.Render("fresh")
	if r.Status == batch.StatusCached {
		status = styleCached.Render("cached")
	}

	line := "  "
	for _, part := range parts {
		line += StyleDim.Render(part) + StyleDim.Render(" · ")
	}
	line += status + StyleDim.Render(" · "+r.Duration.Round(time.Millisecond).String())
	fmt.Fprintln(stdout, line)
}

// statusLabel renders a result status for the summary table.
func statusLabel(s batch.Status) string {
	switch s {
	case batch.StatusOK:
		return StyleSuccess.Render(iconSuccess + " " + string(s))
	case batch.StatusCached:
		return styleCached.Render(iconSuccess + " " + string(s))
	case batch.StatusPlanned:
		return styleIconInfo.Render(iconInfo + " " + string(s))
	case batch.StatusSkipped:
		return StyleWarning.Render(iconSkipped + " " + string(s))
	default:
		return StyleFailure.Render(iconError + " " + string(s))
	}
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
