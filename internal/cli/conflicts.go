package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/order"
	"github.com/sketchbomb/runorder/pkg/render"
	"github.com/sketchbomb/runorder/pkg/show"
)

// conflictsCommand creates the conflicts command for rendering the
// cast-conflict graph.
func (c *CLI) conflictsCommand() *cobra.Command {
	var (
		csvOpts show.CSVOptions
		format  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "conflicts [show.csv]",
		Short: "Render the cast-conflict graph",
		Long: `Render the cast-conflict graph.

Each sketch becomes a node; an edge joins every pair of sketches sharing
performers, labeled with the shared count. Anchored sketches are shaded.
The graph shows at a glance why a show is hard to order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case render.FormatDOT, render.FormatSVG, render.FormatPNG:
			default:
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid format: %q (must be one of: dot, svg, png)", format)
			}

			sketches, err := readShow(args[0], csvOpts)
			if err != nil {
				return err
			}
			m, _ := order.BuildFeasibility(sketches)
			dot := render.ConflictDOT(sketches, m)

			var data []byte
			switch format {
			case render.FormatDOT:
				data = []byte(dot)
			case render.FormatSVG:
				data, err = render.RenderSVG(cmd.Context(), dot)
			case render.FormatPNG:
				data, err = render.RenderPNG(cmd.Context(), dot)
			}
			if err != nil {
				return fmt.Errorf("render conflict graph: %w", err)
			}

			if output == "" {
				os.Stdout.Write(data)
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Conflict graph written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvOpts.Sep, "sep", ",", "column separator")
	cmd.Flags().StringVar(&csvOpts.CastSep, "cast-sep", " ", "performer separator inside the cast column")
	cmd.Flags().BoolVar(&csvOpts.NoHeader, "no-header", false, "treat the first line as data")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
