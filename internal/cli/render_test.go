package cli

import (
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,json,dot", []string{"svg", "json", "dot"}},
		{"dot-svg only", "dot-svg", []string{"dot-svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input ext", "", "family.json", "family"},
		{"output with svg ext", "chart.svg", "family.json", "chart"},
		{"output with dot ext", "chart.dot", "family.json", "chart"},
		{"output without ext", "out/chart", "family.json", "out/chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	// Single format with explicit output keeps the exact path
	if got := outputPath("chart", "chart.svg", "svg", true); got != "chart.svg" {
		t.Errorf("outputPath single = %q, want chart.svg", got)
	}

	// Multiple formats derive per-format extensions
	tests := []struct {
		format string
		want   string
	}{
		{"svg", "family.svg"},
		{"json", "family.layout.json"},
		{"dot", "family.dot"},
		{"dot-svg", "family.dot.svg"},
	}
	for _, tt := range tests {
		if got := outputPath("family", "", tt.format, false); got != tt.want {
			t.Errorf("outputPath(family, %q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestChartLabel(t *testing.T) {
	if got := chartLabel(""); got != "pedigree" {
		t.Errorf("chartLabel(\"\") = %q, want pedigree", got)
	}
	if got := chartLabel("fan"); got != "fan" {
		t.Errorf("chartLabel(fan) = %q, want fan", got)
	}
}
