package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hwidmann/rootline/pkg/pipeline"
	"github.com/hwidmann/rootline/pkg/tree"
)

func TestSampleTreeIsValid(t *testing.T) {
	sample, rootID := sampleTree()

	if err := sample.Validate(); err != nil {
		t.Fatalf("sample tree should validate: %v", err)
	}

	found := false
	for _, p := range sample.People {
		if p.ID == rootID {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("root id %q not among sample people", rootID)
	}
}

func TestSampleTreeLaysOutEveryChart(t *testing.T) {
	sample, rootID := sampleTree()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	defer runner.Close()

	for _, chartType := range []string{tree.ChartPedigree, tree.ChartFan, tree.ChartTimeline} {
		layout, err := runner.ComputeLayout(context.Background(), sample, pipeline.Options{
			ChartType:   chartType,
			RootID:      rootID,
			CurrentYear: 2026,
			Logger:      logger,
		})
		if err != nil {
			t.Errorf("%s layout failed: %v", chartType, err)
			continue
		}
		if layout.ChartType != chartType {
			t.Errorf("ChartType = %q, want %q", layout.ChartType, chartType)
		}
	}
}

func TestSampleTreeFreshIDs(t *testing.T) {
	first, _ := sampleTree()
	second, _ := sampleTree()

	if first.People[0].ID == second.People[0].ID {
		t.Error("sample trees should use fresh ids on every run")
	}
}
