package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hwidmann/rootline/pkg/pipeline"
)

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
		formatsStr string
		filtersStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a family tree to chart files",
		Long: `Render a family tree to chart files.

Runs the complete load, layout, and render pipeline and writes one file
per requested format. SVG output is self-contained; JSON output is the
layout file accepted by external renderers; DOT output (pedigree only)
feeds Graphviz, and dot-svg runs Graphviz directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TreePath = args[0]
			opts.Formats = parseFormats(formatsStr)
			if filtersStr != "" {
				opts.Filters = strings.Split(filtersStr, ",")
			}
			if err := applyConfigFile(configPath, &opts); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with default options")
	cmd.Flags().StringVarP(&opts.ChartType, "chart", "t", "", "chart type: pedigree (default), fan, timeline")
	cmd.Flags().StringVarP(&opts.RootID, "root", "r", "", "root person id (pedigree and fan charts)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, dot-svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reload the tree file even if cached")
	cmd.Flags().StringVar(&filtersStr, "filters", "", "timeline claim types to include (comma-separated)")
	cmd.Flags().IntVar(&opts.CurrentYear, "current-year", 0, "end year for living people (default: this year)")

	return cmd
}

// runRender runs the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s chart...", chartLabel(opts.ChartType)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	base := basePath(output, opts.TreePath)
	written := make([]string, 0, len(result.Artifacts))
	for _, format := range opts.Formats {
		path := outputPath(base, output, format, len(opts.Formats) == 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.PeopleCount, result.Stats.RelationshipCount, result.CacheInfo.RenderHit)

	return nil
}

// chartLabel returns the display name for a chart type, with the
// pipeline default applied.
func chartLabel(chartType string) string {
	if chartType == "" {
		return pipeline.DefaultChartType
	}
	return chartType
}

// formatExt maps a format to its file extension.
func formatExt(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return ".layout.json"
	case pipeline.FormatDOT:
		return ".dot"
	case pipeline.FormatDOTSVG:
		return ".dot.svg"
	default:
		return ".svg"
	}
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if ext == ".svg" || ext == ".json" || ext == ".dot" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath picks the path for one artifact. A single format with an
// explicit --output keeps the user's exact path.
func outputPath(base, output, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return base + formatExt(format)
}
