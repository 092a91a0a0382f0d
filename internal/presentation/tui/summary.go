package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/latword/pkg/fst"
)

// Row is one archive entry in a summary table.
type Row struct {
	Key     string
	Summary fst.Summary
}

// SummaryMarkdown renders archive entries as a markdown table.
func SummaryMarkdown(title string, rows []Row) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(rows) == 0 {
		sb.WriteString("_No entries._\n")
		return sb.String()
	}
	sb.WriteString("| Key | States | Arcs | Finals | Epsilon arcs | Acyclic |\n")
	sb.WriteString("|---|---:|---:|---:|---:|:---:|\n")
	var total fst.Summary
	for _, r := range rows {
		s := r.Summary
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d | %s |\n",
			escapeCell(r.Key), s.States, s.Arcs, s.Finals, s.EpsilonArcs, yesNo(s.Acyclic))
		total.States += s.States
		total.Arcs += s.Arcs
		total.Finals += s.Finals
		total.EpsilonArcs += s.EpsilonArcs
	}
	fmt.Fprintf(&sb, "| **total** | %d | %d | %d | %d | |\n",
		total.States, total.Arcs, total.Finals, total.EpsilonArcs)
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
