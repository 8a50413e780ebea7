package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritestrip/pkg/batch"
	"github.com/matzehuels/spritestrip/pkg/composite"
	"github.com/matzehuels/spritestrip/pkg/manifest"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// composeOpts holds the flags shared by the single-job commands.
type composeOpts struct {
	output  string
	refresh bool
	dryRun  bool
}

func (o *composeOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (derived from the inputs if empty)")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "validate and report without writing")
}

// filmstripCommand creates the filmstrip command.
func (c *CLI) filmstripCommand() *cobra.Command {
	var (
		opts  composeOpts
		frame composite.FrameGeometry
	)

	cmd := &cobra.Command{
		Use:   "filmstrip BASE OVERLAY",
		Short: "Tile a base image and stamp overlay frames onto it",
		Long: `Filmstrip repeats BASE horizontally once per frame and stamps the frames cut
from OVERLAY onto the tiles. Overlay pixels with non-zero alpha replace the tile
pixel; fully transparent pixels leave the base showing.`,
		Example: `  spritestrip filmstrip temple.png fire.png --frame-width 32 --frame-height 48 --count 6
  spritestrip filmstrip temple.png fire.png -W 32 -H 48 -n 6 -o temple_fire.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := manifest.Job{
				Kind:   manifest.KindFilmstrip,
				Inputs: args,
				Output: opts.output,
				Frame:  frame,
			}
			return c.runSingle(cmd.Context(), job, opts)
		},
	}

	cmd.Flags().IntVarP(&frame.Width, "frame-width", "W", 0, "width of one overlay frame in pixels")
	cmd.Flags().IntVarP(&frame.Height, "frame-height", "H", 0, "height of one overlay frame in pixels")
	cmd.Flags().IntVarP(&frame.Count, "count", "n", 0, "number of frames to stamp")
	for _, name := range []string{"frame-width", "frame-height", "count"} {
		_ = cmd.MarkFlagRequired(name)
	}
	opts.register(cmd)
	return cmd
}

// gridCommand creates the grid command.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		opts  composeOpts
		cell  composite.CellGeometry
		color string
	)

	cmd := &cobra.Command{
		Use:   "grid SRC",
		Short: "Draw cell boundaries over a sprite sheet",
		Long: `Grid copies SRC and paints one-pixel lines on every column that is a multiple
of the cell width and every row that is a multiple of the cell height. The right
and bottom edges stay open.`,
		Example: `  spritestrip grid sheet.png --cell-width 32 --cell-height 48
  spritestrip grid sheet.png -W 16 -H 16 --color "#00ff0080"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := manifest.Job{
				Kind:   manifest.KindGrid,
				Inputs: args,
				Output: opts.output,
				Cell:   cell,
				Color:  color,
			}
			return c.runSingle(cmd.Context(), job, opts)
		},
	}

	cmd.Flags().IntVarP(&cell.Width, "cell-width", "W", 0, "cell width in pixels")
	cmd.Flags().IntVarP(&cell.Height, "cell-height", "H", 0, "cell height in pixels")
	cmd.Flags().StringVar(&color, "color", raster.FormatColor(raster.DefaultGridColor), "line color as #rrggbb, #rrggbbaa or r,g,b,a")
	_ = cmd.MarkFlagRequired("cell-width")
	_ = cmd.MarkFlagRequired("cell-height")
	opts.register(cmd)
	return cmd
}

// stackCommand creates the stack command.
func (c *CLI) stackCommand() *cobra.Command {
	var opts composeOpts

	cmd := &cobra.Command{
		Use:   "stack TOP BOTTOM",
		Short: "Place one image above another",
		Long: `Stack writes TOP above BOTTOM on a canvas as wide as the wider image.
Uncovered pixels are fully transparent.`,
		Example: `  spritestrip stack temple.png temple_fire.png`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := manifest.Job{
				Kind:   manifest.KindStack,
				Inputs: args,
				Output: opts.output,
			}
			return c.runSingle(cmd.Context(), job, opts)
		},
	}

	opts.register(cmd)
	return cmd
}

// runSingle runs one job with a spinner and prints its result.
func (c *CLI) runSingle(ctx context.Context, job manifest.Job, opts composeOpts) error {
	job.Name = manifest.DefaultName(job.Kind, job.Inputs)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Compositing "+job.Name+"...")
	spinner.Start()
	res := runner.RunJob(ctx, job, batch.Options{DryRun: opts.dryRun, Refresh: opts.refresh})
	spinner.Stop()

	if res.Err != nil {
		return res.Err
	}
	printResult(res)
	return nil
}
