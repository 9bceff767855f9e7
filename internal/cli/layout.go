package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hwidmann/rootline/pkg/pipeline"
	"github.com/hwidmann/rootline/pkg/tree"
)

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
		pick       bool
		filtersStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute chart geometry from a family tree file",
		Long: `Compute chart geometry from a family tree file.

The layout command takes a tree.json file and computes the geometry for
the requested chart type. The output is a layout.json file (same format
as 'render -f json') that can be rendered to SVG using 'render'.

Pedigree and fan charts need a root person (--root). Timelines lay out
every dated claim in the file and need no root.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TreePath = args[0]
			if filtersStr != "" {
				opts.Filters = strings.Split(filtersStr, ",")
			}
			if err := applyConfigFile(configPath, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache, pick)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with default options")

	// Chart flags
	cmd.Flags().StringVarP(&opts.ChartType, "chart", "t", "", "chart type: pedigree (default), fan, timeline")
	cmd.Flags().StringVarP(&opts.RootID, "root", "r", "", "root person id (pedigree and fan charts)")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick the root person interactively")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reload the tree file even if cached")

	// Pedigree geometry
	cmd.Flags().Float64Var(&opts.Pedigree.NodeWidth, "node-width", 0, "pedigree box width")
	cmd.Flags().Float64Var(&opts.Pedigree.NodeHeight, "node-height", 0, "pedigree box height")
	cmd.Flags().IntVar(&opts.Pedigree.SweepPairs, "sweeps", 0, "pedigree crossing-reduction sweep pairs")

	// Fan geometry
	cmd.Flags().Float64Var(&opts.Fan.RootRadius, "root-radius", 0, "fan chart central circle radius")
	cmd.Flags().Float64Var(&opts.Fan.RingWidth, "ring-width", 0, "fan chart ring thickness")

	// Timeline options
	cmd.Flags().StringVar(&filtersStr, "filters", "", "timeline claim types to include (comma-separated)")
	cmd.Flags().IntVar(&opts.CurrentYear, "current-year", 0, "end year for living people (default: this year)")
	cmd.Flags().Float64Var(&opts.RowGap, "row-gap", 0, "timeline row packing gap in years")

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache, pick bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetLayoutDefaults()

	prog := newProgress(c.Logger)
	t, loadHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", opts.TreePath, err)
	}
	prog.done(fmt.Sprintf("Loaded %d people", len(t.People)))

	if pick && opts.ChartType == tree.ChartTimeline {
		printWarning("Timeline charts have no root person, ignoring --pick")
	}
	if pick && opts.ChartType != tree.ChartTimeline {
		rootID, err := pickRoot(t.People)
		if err != nil {
			return err
		}
		if rootID == "" {
			printInfo("No person selected")
			return nil
		}
		opts.RootID = rootID
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.ChartType))
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.TreePath, filepath.Ext(opts.TreePath))
		outputPath = base + ".layout.json"
	}

	if err := tree.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(t.People), len(t.Relationships), loadHit && cacheHit)
	printNewline()
	printNextStep("Render", "rootline render "+opts.TreePath)

	return nil
}
