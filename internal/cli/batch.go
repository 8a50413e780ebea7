package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritestrip/pkg/batch"
	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/manifest"
)

// batchOpts holds the batch command's flags.
type batchOpts struct {
	workers  int
	dryRun   bool
	pick     bool
	failFast bool
	refresh  bool
	jobs     []string
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Run a manifest of compositing jobs",
		Long: `Batch runs every job in a TOML, YAML or JSON manifest. A failing job is
reported and the remaining jobs still run. Jobs that write or read the same file
run in manifest order; independent jobs run in parallel with --workers.

The exit status is non-zero when any job failed.`,
		Example: `  spritestrip batch sprites.toml
  spritestrip batch sprites.yaml --workers 4
  spritestrip batch sprites.toml --pick
  spritestrip batch sprites.toml --job temple-fire --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", batch.DefaultWorkers, fmt.Sprintf("jobs to run in parallel (1-%d)", batch.MaxWorkers))
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate and report without writing")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose jobs interactively")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "start no new job after the first failure")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().StringSliceVar(&opts.jobs, "job", nil, "run only the named jobs (repeatable)")

	return cmd
}

// runBatch loads, filters and runs a manifest.
func (c *CLI) runBatch(ctx context.Context, path string, opts batchOpts) error {
	logger := loggerFromContext(ctx)

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded manifest", "path", path, "jobs", len(m.Jobs))

	names := opts.jobs
	if opts.pick {
		picked, err := pickJobs(m.Jobs)
		if err != nil {
			return err
		}
		if picked == nil {
			printInfo("Nothing selected")
			return nil
		}
		names = picked
	}
	if len(names) > 0 {
		if m, err = m.Select(names); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	jobs := m.Expand()
	prog := newProgress(logger)
	report, err := runner.Run(ctx, jobs, batch.Options{
		Workers:  opts.workers,
		FailFast: opts.failFast,
		DryRun:   opts.dryRun,
		Refresh:  opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ran %d jobs", len(jobs)))

	fmt.Fprintln(stdout, renderSummary(report))
	for _, r := range report.Results {
		if !r.OK() && r.Err != nil {
			printDetail("%s: %s", r.Job.Name, errors.UserMessage(r.Err))
		}
	}
	return report.Err()
}

// pickJobs runs the interactive picker. It returns nil when the user quits.
func pickJobs(jobs []manifest.Job) ([]string, error) {
	final, err := tea.NewProgram(NewJobPickerModel(jobs)).Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "job picker")
	}
	return final.(JobPickerModel).Selected(), nil
}
