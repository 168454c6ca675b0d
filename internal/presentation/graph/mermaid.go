package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/antoine/pkg/domain"
)

// GraphOverlay contains dashboard state to highlight on the graph.
type GraphOverlay struct {
	Selected domain.Pair
	Skipped  []string
}

// GenerateMermaid produces a Mermaid flowchart of the component table.
// Every component is a node; every computed separation is an undirected edge
// labelled with its boiling temperature difference:
// - Component: ([Stadium])
// - Edge: A -- "ΔT K" --- B
// Overlay styles mark the selected pair and the skipped components.
func GenerateMermaid(names []string, separations []domain.Separation, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", sanitizeMermaidID(name), escapeLabel(name)))
	}

	selectedEdge := -1
	for i, sep := range separations {
		label := fmt.Sprintf("ΔT %.2f K", sep.Difference)
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --- %s\n",
			sanitizeMermaidID(sep.Pair.First), label, sanitizeMermaidID(sep.Pair.Second)))
		if overlay != nil && sep.Pair == overlay.Selected {
			selectedEdge = i
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef skipped fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4 2,color:#000;\n")

		if !overlay.Selected.IsZero() {
			sb.WriteString(fmt.Sprintf("    class %s,%s selected;\n",
				sanitizeMermaidID(overlay.Selected.First), sanitizeMermaidID(overlay.Selected.Second)))
		}
		if selectedEdge >= 0 {
			sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:#fbc02d,stroke-width:4px;\n", selectedEdge))
		}

		seen := make(map[string]bool)
		for _, name := range overlay.Skipped {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s skipped;\n", safeID))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ",", "_")
	s = strings.ReplaceAll(s, "(", "_")
	s = strings.ReplaceAll(s, ")", "_")
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
