package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/pipeline"
	"github.com/sketchbomb/runorder/pkg/render"
	"github.com/sketchbomb/runorder/pkg/show"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		csvOpts    show.CSVOptions
		formatsStr string
		output     string
		noCache    bool
		opts       pipeline.Options
		timeoutSec int
	)

	cmd := &cobra.Command{
		Use:   "optimize [show.csv]",
		Short: "Find the best running order for a show",
		Long: `Find the best running order for a show.

The input is a casting sheet in CSV format with columns title, cast, and an
optional anchored flag. The cast column lists performers separated by spaces
(configurable with --cast-sep). Use "-" to read from stdin.

Small shows are solved exactly: every order with zero adjacent cast overlap
is enumerated and the one closest to the sheet order wins. Larger shows fall
back to greedy pairwise improvement. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sketches, err := readShow(args[0], csvOpts)
			if err != nil {
				return err
			}
			opts.Sketches = sketches
			opts.Formats = parseFormats(formatsStr)
			opts.Timeout = time.Duration(timeoutSec) * time.Second
			opts.Logger = c.Logger
			return c.runOptimize(cmd, opts, output, noCache)
		},
	}

	// Input flags
	cmd.Flags().StringVar(&csvOpts.Sep, "sep", ",", "column separator")
	cmd.Flags().StringVar(&csvOpts.CastSep, "cast-sep", " ", "performer separator inside the cast column")
	cmd.Flags().BoolVar(&csvOpts.NoHeader, "no-header", false, "treat the first line as data")

	// Solver flags
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", pipeline.AlgorithmAuto, "solver: auto, exhaustive, greedy")
	cmd.Flags().BoolVarP(&opts.KeepOrder, "keep-order", "k", false, "prefer orders close to the sheet order")
	cmd.Flags().IntVar(&opts.Limit, "limit", pipeline.DefaultExhaustiveLimit, "largest show size solved exhaustively in auto mode")
	cmd.Flags().IntVar(&opts.MaxStates, "max-states", pipeline.DefaultMaxStates, "state cap for the exhaustive search")
	cmd.Flags().IntVar(&timeoutSec, "timeout", int(pipeline.DefaultTimeout/time.Second), "solve timeout in seconds")

	// Output flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), markdown, dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

func (c *CLI) runOptimize(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), "Optimizing running order...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), opts)
	spinner.Stop()
	if spinner.Cancelled() {
		return cmd.Context().Err()
	}
	if err != nil {
		if errors.Is(err, errors.ErrCodeInfeasible) {
			printWarning("No conflict-free order exists for this show")
			printDetail("Try --algorithm greedy to minimize conflicts instead")
		}
		return err
	}
	prog.done(fmt.Sprintf("Optimized %d sketches", result.Stats.SketchCount))

	if !result.Exact {
		printWarning("Order is a greedy local optimum, not a proven best")
	}
	printSuccess("Running order ready")
	printStats(result.Stats.SketchCount, result.Overlaps, result.Algorithm, result.CacheInfo.SolveHit)

	return writeArtifacts(result.Artifacts, opts.Formats, output)
}

// writeArtifacts sends artifacts to stdout or to files. With no output path
// the first format prints to stdout; with one the single artifact goes to
// that file, and multiple formats use it as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	if output == "" {
		for _, f := range formats {
			os.Stdout.Write(artifacts[f])
		}
		return nil
	}

	for _, f := range formats {
		path := output
		if len(formats) > 1 {
			path = output + "." + extensionFor(f)
		}
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func extensionFor(format string) string {
	switch format {
	case render.FormatMarkdown:
		return "md"
	case render.FormatText:
		return "txt"
	default:
		return format
	}
}

// readShow loads and parses a casting sheet. "-" reads from stdin.
func readShow(path string, opts show.CSVOptions) ([]show.Sketch, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "show file not found: %s", filepath.Clean(path))
		}
	}
	if err != nil {
		return nil, err
	}
	return show.ParseCSV(string(data), opts)
}
