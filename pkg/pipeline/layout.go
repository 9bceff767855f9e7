package pipeline

import (
	stderrors "errors"

	"github.com/hwidmann/rootline/pkg/chart/fan"
	"github.com/hwidmann/rootline/pkg/chart/pedigree"
	"github.com/hwidmann/rootline/pkg/chart/timeline"
	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/kin"
	"github.com/hwidmann/rootline/pkg/tree"
)

// ComputeLayout runs the chart engine selected by opts.ChartType on the
// given tree and returns the serializable layout.
func ComputeLayout(t tree.Tree, opts Options) (tree.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return tree.Layout{}, err
	}

	people, rels, claims := t.Kin()

	switch opts.ChartType {
	case tree.ChartPedigree:
		res, err := pedigree.Layout(people, rels, opts.RootID, opts.Pedigree)
		if err != nil {
			return tree.Layout{}, wrapRootErr(err, opts.RootID)
		}
		return tree.FromPedigree(res), nil

	case tree.ChartFan:
		res, err := fan.Layout(people, rels, opts.RootID, opts.Fan)
		if err != nil {
			return tree.Layout{}, wrapRootErr(err, opts.RootID)
		}
		return tree.FromFan(res), nil

	case tree.ChartTimeline:
		res := timeline.Layout(claims, people, timeline.Options{
			Filters:     opts.Filters,
			CurrentYear: opts.CurrentYear,
			RowGap:      opts.RowGap,
		})
		return tree.FromTimeline(res), nil
	}

	return tree.Layout{}, errors.New(errors.ErrCodeInvalidChartType,
		"invalid chart type: %q", opts.ChartType)
}

// wrapRootErr translates the engines' unknown-root sentinel into a
// structured error that carries the offending id.
func wrapRootErr(err error, rootID string) error {
	if stderrors.Is(err, kin.ErrUnknownRoot) {
		return errors.Wrap(errors.ErrCodeInvalidRoot, err,
			"person %q is not in the tree", rootID)
	}
	return err
}
