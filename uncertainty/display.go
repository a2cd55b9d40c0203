// SPDX-License-Identifier: MIT

package uncertainty

import (
	"fmt"
	"strings"
)

// TableString renders g as a table in file units: a header line, the
// distance samples across the top and one line per value row labelled with
// its depth ("-" without a depth axis).
func (g *Grid) TableString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Uncertainty phase=%s attribute=%s units=%s source=%s\n",
		g.phase, g.attribute, g.attribute.Unit(), g.source)
	if g.IsEmpty() {
		sb.WriteString("(no samples)\n")
		return sb.String()
	}

	decimals := g.attribute.Precision()
	fmt.Fprintf(&sb, "%10s", "depth\\dist")
	for _, d := range g.distances {
		fmt.Fprintf(&sb, " %10.3f", d)
	}
	sb.WriteByte('\n')

	toFile := g.attribute.ToFile()
	for i, row := range g.rows {
		if len(g.depths) > 0 {
			fmt.Fprintf(&sb, "%10.3f", g.depths[i])
		} else {
			fmt.Fprintf(&sb, "%10s", "-")
		}
		for _, v := range row {
			fmt.Fprintf(&sb, " %10.*f", decimals, v*toFile)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// FileString renders g exactly as WriteText would, so the result can be
// read back with ReadText.
func (g *Grid) FileString() string {
	var sb strings.Builder
	_ = g.WriteText(&sb) // writes to a strings.Builder cannot fail

	return sb.String()
}
