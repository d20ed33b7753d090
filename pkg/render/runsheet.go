// Package render produces human-readable run sheets and conflict-graph
// artifacts for an optimized show.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sketchbomb/runorder/pkg/order"
	"github.com/sketchbomb/runorder/pkg/show"
)

// Supported artifact formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatPNG      = "png"
)

// ValidFormat reports whether name is a supported artifact format.
func ValidFormat(name string) bool {
	switch name {
	case FormatText, FormatMarkdown, FormatDOT, FormatSVG, FormatPNG:
		return true
	}
	return false
}

// RunSheet renders a plain-text run sheet: one line per slot with the
// sketch title, its cast, and the overlap with the following sketch.
func RunSheet(sketches []show.Sketch, o show.Order, m order.Matrix) string {
	var buf bytes.Buffer

	width := 0
	for _, s := range sketches {
		if len(s.Title) > width {
			width = len(s.Title)
		}
	}

	for pos := 0; pos < o.Len(); pos++ {
		idx := o.At(pos)
		s := sketches[idx]
		fmt.Fprintf(&buf, "%2d. %-*s  %s", pos+1, width, s.Title, strings.Join(s.Cast, ", "))
		if pos+1 < o.Len() {
			if n := m.Overlap(idx, o.At(pos+1)); n > 0 {
				fmt.Fprintf(&buf, "  [%d shared with next]", n)
			}
		}
		buf.WriteByte('\n')
	}

	fmt.Fprintf(&buf, "\ntotal cast overlaps: %d\n", order.AdjacentOverlap(m, o))
	return buf.String()
}

// RunSheetMarkdown renders the run sheet as a Markdown table.
func RunSheetMarkdown(sketches []show.Sketch, o show.Order, m order.Matrix) string {
	var buf bytes.Buffer

	buf.WriteString("| # | Sketch | Cast | Shared with next |\n")
	buf.WriteString("|---|--------|------|------------------|\n")
	for pos := 0; pos < o.Len(); pos++ {
		idx := o.At(pos)
		s := sketches[idx]
		shared := ""
		if pos+1 < o.Len() {
			if n := m.Overlap(idx, o.At(pos+1)); n > 0 {
				shared = fmt.Sprintf("%d", n)
			}
		}
		fmt.Fprintf(&buf, "| %d | %s | %s | %s |\n",
			pos+1, escapePipes(s.Title), escapePipes(strings.Join(s.Cast, ", ")), shared)
	}

	fmt.Fprintf(&buf, "\nTotal cast overlaps: **%d**\n", order.AdjacentOverlap(m, o))
	return buf.String()
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
