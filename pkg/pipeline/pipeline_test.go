package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hwidmann/rootline/pkg/cache"
	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/tree"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"dot-svg", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateChartType(t *testing.T) {
	tests := []struct {
		chartType string
		wantErr   bool
	}{
		{"pedigree", false},
		{"fan", false},
		{"timeline", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateChartType(tt.chartType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateChartType(%q) error = %v, wantErr %v", tt.chartType, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{
		Tree:   sampleTree(),
		RootID: "r",
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.ChartType != DefaultChartType {
		t.Errorf("ChartType = %q, want %q", opts.ChartType, DefaultChartType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Second validation should pass: %v", err)
	}
}

func TestValidateForLoadRequiresTree(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Fatal("Expected error without tree or tree_path")
	}
}

func TestValidateForLayoutRootRequired(t *testing.T) {
	opts := Options{ChartType: tree.ChartPedigree}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Pedigree without root: error = %v, want INVALID_INPUT", err)
	}

	opts = Options{ChartType: tree.ChartTimeline}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("Timeline needs no root: %v", err)
	}
}

func TestValidateForRenderDOTPedigreeOnly(t *testing.T) {
	opts := Options{ChartType: tree.ChartFan, Formats: []string{FormatDOT}}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DOT for fan chart: error = %v, want INVALID_FORMAT", err)
	}

	opts = Options{ChartType: tree.ChartPedigree, Formats: []string{FormatDOT}}
	if err := opts.ValidateForRender(); err != nil {
		t.Errorf("DOT for pedigree chart: %v", err)
	}
}

func TestLayoutKeyOptsGeometry(t *testing.T) {
	opts := Options{ChartType: tree.ChartTimeline, RowGap: 2.5}
	keyOpts := opts.LayoutKeyOpts()
	if keyOpts.Geometry != 2.5 {
		t.Errorf("Timeline geometry = %v, want 2.5", keyOpts.Geometry)
	}
	if keyOpts.ChartType != tree.ChartTimeline {
		t.Errorf("ChartType = %q, want timeline", keyOpts.ChartType)
	}
}

// sampleTree builds a minimal three-person tree: a root and two parents.
func sampleTree() *tree.Tree {
	return &tree.Tree{
		People: []tree.Person{
			{ID: "r", GivenName: "Rae", Surname: "Root", BirthDate: "1950-03-12"},
			{ID: "m", GivenName: "May", Surname: "Adams", BirthDate: "1921", DeathDate: "1999"},
			{ID: "f", GivenName: "Finn", Surname: "Baker", BirthDate: "1920", DeathDate: "1990"},
		},
		Relationships: []tree.Relationship{
			{Type: "parent_child", Person1: "m", Person2: "r"},
			{Type: "parent_child", Person1: "f", Person2: "r"},
			{Type: "spouse", Person1: "m", Person2: "f"},
		},
		Claims: []tree.Claim{
			{SubjectID: "m", Type: "marriage", Value: tree.ClaimValue{Date: "1948-06"}},
			{SubjectID: "f", Type: "marriage", Value: tree.ClaimValue{Date: "1948-06"}},
		},
	}
}

func TestExecuteInMemoryTree(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Tree:    sampleTree(),
		RootID:  "r",
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Stats.PeopleCount != 3 {
		t.Errorf("PeopleCount = %d, want 3", result.Stats.PeopleCount)
	}
	if result.Stats.RelationshipCount != 3 {
		t.Errorf("RelationshipCount = %d, want 3", result.Stats.RelationshipCount)
	}
	if result.TreeHash == "" {
		t.Error("TreeHash should be set")
	}
	if result.Layout.ChartType != tree.ChartPedigree {
		t.Errorf("ChartType = %q, want pedigree", result.Layout.ChartType)
	}
	if len(result.Layout.Nodes) != 3 {
		t.Errorf("Layout has %d nodes, want 3", len(result.Layout.Nodes))
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.Contains(string(svg), "<svg") {
		t.Error("SVG artifact missing or malformed")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("JSON artifact missing")
	}

	if result.CacheInfo.LoadHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("NullCache should never hit: %+v", result.CacheInfo)
	}
}

func TestExecuteInvalidRoot(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Tree:   sampleTree(),
		RootID: "ghost",
	})
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Errorf("Execute error = %v, want INVALID_ROOT", err)
	}
}

func TestExecuteTimeline(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Tree:        sampleTree(),
		ChartType:   tree.ChartTimeline,
		CurrentYear: 2026,
		Formats:     []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Layout.ChartType != tree.ChartTimeline {
		t.Errorf("ChartType = %q, want timeline", result.Layout.ChartType)
	}
	if len(result.Layout.Lifespans) != 3 {
		t.Errorf("Lifespans = %d, want 3", len(result.Layout.Lifespans))
	}
	// The shared marriage date merges into one event.
	if len(result.Layout.Events) != 1 {
		t.Errorf("Events = %d, want 1", len(result.Layout.Events))
	}
}

func TestExecuteCachesLayoutAndArtifacts(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Tree:    sampleTree(),
		RootID:  "r",
		Formats: []string{FormatSVG},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("First run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("Second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("Second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("Cached artifact should equal the rendered one")
	}
}

func TestLoadFileCaching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.json")
	if err := tree.WriteTreeFile(*sampleTree(), path); err != nil {
		t.Fatalf("WriteTreeFile failed: %v", err)
	}

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	_, hit, err := runner.LoadWithCacheInfo(context.Background(), Options{TreePath: path})
	if err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	if hit {
		t.Error("First load should miss")
	}

	loaded, hit, err := runner.LoadWithCacheInfo(context.Background(), Options{TreePath: path})
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if !hit {
		t.Error("Second load should hit")
	}
	if len(loaded.People) != 3 {
		t.Errorf("Loaded %d people, want 3", len(loaded.People))
	}

	// Refresh bypasses the cache.
	_, hit, err = runner.LoadWithCacheInfo(context.Background(), Options{TreePath: path, Refresh: true})
	if err != nil {
		t.Fatalf("Refresh load failed: %v", err)
	}
	if hit {
		t.Error("Refresh load should miss")
	}
}

func TestLoadMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Load(context.Background(), Options{TreePath: "/nonexistent/family.json"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rootline.toml")
	content := `
tree_path = "family.json"
chart_type = "fan"
root_id = "p-001"
formats = ["svg", "json"]

[fan]
root_radius = 80.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ChartType != "fan" {
		t.Errorf("ChartType = %q, want fan", cfg.ChartType)
	}
	if cfg.Fan.RootRadius != 80 {
		t.Errorf("Fan.RootRadius = %v, want 80", cfg.Fan.RootRadius)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Missing config: error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConfigApplyPrecedence(t *testing.T) {
	cfg := Config{
		ChartType: "fan",
		RootID:    "from-config",
		Formats:   []string{"json"},
	}

	// Explicit options win over the config file.
	opts := Options{RootID: "from-flag"}
	cfg.Apply(&opts)
	if opts.RootID != "from-flag" {
		t.Errorf("RootID = %q, want from-flag", opts.RootID)
	}
	if opts.ChartType != "fan" {
		t.Errorf("ChartType = %q, want fan (from config)", opts.ChartType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
}
