package render

import (
	"bytes"
	"fmt"

	"github.com/hwidmann/rootline/pkg/tree"
)

const (
	timelinePxPerYear  = 10.0
	timelineRowHeight  = 26.0
	timelineBarHeight  = 16.0
	timelinePadding    = 40.0
	timelineSectionGap = 30.0
	timelineAxisColor  = "#cccccc"
	timelineBarColor   = "#4e79a7"
	timelineLifeColor  = "#59a14f"
	timelineOpenColor  = "#a7c9a9"
	timelineFontSize   = 11.0
)

// timelineSVG renders events above and lifespans below a shared
// year-scaled axis with decade gridlines.
func timelineSVG(l tree.Layout) []byte {
	span := l.MaxYear - l.MinYear
	if span <= 0 {
		span = 10
	}
	width := span*timelinePxPerYear + 2*timelinePadding
	eventsTop := timelinePadding
	livesTop := eventsTop + float64(l.EventRowCount)*timelineRowHeight + timelineSectionGap
	height := livesTop + float64(l.PersonRowCount)*timelineRowHeight + timelinePadding

	x := func(year float64) float64 {
		return timelinePadding + (year-l.MinYear)*timelinePxPerYear
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	// Decade gridlines.
	for year := l.MinYear; year <= l.MaxYear; year += 10 {
		gx := x(year)
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			gx, eventsTop-10, gx, height-timelinePadding+10, timelineAxisColor)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" fill="#888888">%.0f</text>`+"\n",
			gx, eventsTop-16, timelineFontSize, year)
	}

	for _, e := range l.Events {
		y := eventsTop + float64(e.Row)*timelineRowHeight
		if e.EndYear != nil {
			fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s"/>`+"\n",
				x(e.StartYear), y, (*e.EndYear-e.StartYear)*timelinePxPerYear, timelineBarHeight, timelineBarColor)
		} else {
			fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n",
				x(e.StartYear), y+timelineBarHeight/2, timelineBarColor)
		}
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f">%s</text>`+"\n",
			x(e.StartYear)+8, y+timelineBarHeight/2+timelineFontSize/3, timelineFontSize, escapeText(eventLabel(e)))
	}

	for _, p := range l.Lifespans {
		y := livesTop + float64(p.Row)*timelineRowHeight
		fill := timelineLifeColor
		if p.Open {
			fill = timelineOpenColor
		}
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s"/>`+"\n",
			x(p.StartYear), y, (p.EndYear-p.StartYear)*timelinePxPerYear, timelineBarHeight, fill)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f">%s</text>`+"\n",
			x(p.StartYear)+4, y-3, timelineFontSize, escapeText(p.Name))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// eventLabel appends a participant count to merged entries.
func eventLabel(e tree.TimelineEvent) string {
	if e.MergedCount > 1 {
		return fmt.Sprintf("%s (%d)", e.Label, e.MergedCount)
	}
	return e.Label
}
