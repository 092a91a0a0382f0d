package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

// GraphOverlay contains extra state data to visualize on the graph.
type GraphOverlay struct {
	// Highlighted states are drawn with the "highlight" class, e.g. word starts.
	Highlighted []domain.StateID
}

// Style controls how labels and weights are printed.
type Style[W any] struct {
	// Symbols maps labels to names. Unknown labels print as numbers.
	Symbols map[domain.Label]string
	// Weight formats arc and final weights. Nil hides weights; One is never shown.
	Weight func(W) string
}

// GenerateMermaid produces a Mermaid flowchart of an automaton.
// It applies semantic styling:
// - Start: ((Circle))
// - Final: (((Double circle)))
// - Other: (Rounded)
func GenerateMermaid[W any](a ports.Automaton[W], sr semiring.Semiring[W], style Style[W], overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for s := 0; s < a.NumStates(); s++ {
		id := domain.StateID(s)
		final := a.Final(id)
		isFinal := !semiring.IsZero(sr, final)

		opener, closer := "(", ")"
		switch {
		case isFinal:
			opener, closer = "(((", ")))"
		case id == a.Start():
			opener, closer = "((", "))"
		}

		text := strconv.Itoa(s)
		if isFinal {
			text += style.weight(sr, final, "/")
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(id), opener, text, closer)
	}

	for s := 0; s < a.NumStates(); s++ {
		id := domain.StateID(s)
		for _, arc := range a.Arcs(id) {
			label := style.label(arc.ILabel)
			if arc.OLabel != arc.ILabel {
				label += ":" + style.label(arc.OLabel)
			}
			label += style.weight(sr, arc.Weight, "/")
			// Escape double quotes for Mermaid labels
			label = strings.ReplaceAll(label, "\"", "'")
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(id), label, nodeID(arc.NextState))
		}
	}

	if a.Start() != domain.NoState {
		sb.WriteString("\n    classDef start stroke-width:3px;\n")
		fmt.Fprintf(&sb, "    class %s start;\n", nodeID(a.Start()))
	}

	if overlay != nil && len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light backgrounds
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Highlighted {
			if seen[id] || id < 0 || int(id) >= a.NumStates() {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s highlight;\n", nodeID(id))
		}
	}

	return sb.String()
}

func (st Style[W]) label(l domain.Label) string {
	if name, ok := st.Symbols[l]; ok {
		return name
	}
	if l == domain.Epsilon {
		return "ε"
	}
	return strconv.FormatInt(int64(l), 10)
}

func (st Style[W]) weight(sr semiring.Semiring[W], w W, sep string) string {
	if st.Weight == nil || sr.Equal(w, sr.One()) {
		return ""
	}
	return sep + st.Weight(w)
}

func nodeID(s domain.StateID) string {
	return "s" + strconv.Itoa(int(s))
}
