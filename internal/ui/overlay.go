package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangle of view with the overlay lines,
// top-left corner at (x, y). Escape sequences on both sides survive.
// Rows missing below view are added so a short page never cuts the panel
// off. Plain input stays free of escape sequences.
func spliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for len(lines) < y+len(overlay) {
		lines = append(lines, "")
	}
	width := ansi.StringWidth(overlay[0])
	reset := ""
	if strings.Contains(view, "\x1b") || strings.Contains(strings.Join(overlay, ""), "\x1b") {
		reset = "\x1b[0m"
	}

	for i, over := range overlay {
		idx := y + i
		if idx < 0 {
			continue
		}
		line := lines[idx]
		lineWidth := ansi.StringWidth(line)

		var b strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(line, x, "")
			b.WriteString(prefix)
			if pad := x - ansi.StringWidth(prefix); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString(reset)
		b.WriteString(over)
		b.WriteString(reset)
		if end := x + width; end < lineWidth {
			b.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		lines[idx] = b.String()
	}
	return strings.Join(lines, "\n")
}
