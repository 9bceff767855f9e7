package pipeline

import (
	"fmt"

	"github.com/hwidmann/rootline/pkg/render"
	"github.com/hwidmann/rootline/pkg/tree"
)

// Render generates output artifacts in the requested formats.
func Render(l tree.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = render.SVG(l)
		case FormatJSON:
			data, err = render.JSON(l)
		case FormatDOT:
			var dot string
			dot, err = render.ToDOT(l)
			data = []byte(dot)
		case FormatDOTSVG:
			var dot string
			dot, err = render.ToDOT(l)
			if err == nil {
				data, err = render.DOTToSVG(dot)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
