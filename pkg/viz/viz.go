// Package viz renders graphs and collision reports for the terminal.
// Provenance is visible in the output: user-stated nodes render in square
// brackets, ai-inferred nodes in parentheses.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/sentinel/pkg/graph"
)

// LargeGraphNodeLimit is where the node listing switches to a summary.
const LargeGraphNodeLimit = 50

// Styles
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	collisionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	confidenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF87"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFAFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	okStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))
)

// FormatNode renders a node label with provenance markers.
func FormatNode(n graph.Node) string {
	if n.Source == graph.SourceUserStated {
		return "[" + n.Label + "]"
	}
	return "(" + n.Label + ")"
}

// RenderGraph produces a plain-text view of the graph: nodes grouped by
// type, then one line per distinct relationship. Duplicate relationship
// lines collapse into one. Graphs above LargeGraphNodeLimit nodes get a
// summary instead of the full node listing.
func RenderGraph(g *graph.Graph) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Knowledge Graph"))
	fmt.Fprintf(&b, "\n%d nodes, %d edges\n", len(g.Nodes), len(g.Edges))

	if len(g.Nodes) == 0 {
		b.WriteString(dimStyle.Render("(empty)"))
		b.WriteString("\n")
		return b.String()
	}

	if len(g.Nodes) > LargeGraphNodeLimit {
		renderTypeSummary(&b, g)
	} else {
		renderNodeListing(&b, g)
	}

	renderEdges(&b, g)
	return b.String()
}

func renderNodeListing(b *strings.Builder, g *graph.Graph) {
	byType := make(map[string][]graph.Node)
	var types []string
	for _, n := range g.Nodes {
		if _, seen := byType[n.Type]; !seen {
			types = append(types, n.Type)
		}
		byType[n.Type] = append(byType[n.Type], n)
	}
	sort.Strings(types)

	for _, t := range types {
		fmt.Fprintf(b, "\n%s:\n", strings.ToUpper(t))
		for _, n := range byType[t] {
			fmt.Fprintf(b, "  %s\n", FormatNode(n))
		}
	}
}

func renderTypeSummary(b *strings.Builder, g *graph.Graph) {
	counts := make(map[string]int)
	var types []string
	for _, n := range g.Nodes {
		if counts[n.Type] == 0 {
			types = append(types, n.Type)
		}
		counts[n.Type]++
	}
	sort.Strings(types)

	b.WriteString(dimStyle.Render(
		fmt.Sprintf("\nGraph too large to list every node (limit %d). By type:", LargeGraphNodeLimit)))
	b.WriteString("\n")
	for _, t := range types {
		fmt.Fprintf(b, "  %s: %d\n", strings.ToUpper(t), counts[t])
	}
}

func renderEdges(b *strings.Builder, g *graph.Graph) {
	if len(g.Edges) == 0 {
		return
	}
	index := g.NodeIndex()

	b.WriteString("\nRELATIONSHIPS:\n")
	seen := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		line := edgeLine(e, index)
		if seen[line] {
			continue
		}
		seen[line] = true
		fmt.Fprintf(b, "  %s\n", line)
	}
}

func edgeLine(e graph.Edge, index map[string]graph.Node) string {
	source := e.SourceID
	if n, ok := index[e.SourceID]; ok {
		source = FormatNode(n)
	}
	target := e.TargetID
	if n, ok := index[e.TargetID]; ok {
		target = FormatNode(n)
	}
	return fmt.Sprintf("%s --%s--> %s", source, e.Relationship, target)
}

// RenderCollisions produces the collision report. An empty list renders a
// single all-clear line.
func RenderCollisions(collisions []graph.ScoredCollision) string {
	if len(collisions) == 0 {
		return okStyle.Render("No energy collisions detected.") + "\n"
	}

	var b strings.Builder
	b.WriteString(collisionStyle.Render(
		fmt.Sprintf("%d energy collision(s) detected", len(collisions))))
	b.WriteString("\n")

	for i, c := range collisions {
		fmt.Fprintf(&b, "\n%d. %s  %s\n",
			i+1,
			pathStyle.Render(strings.Join(c.Path, " -> ")),
			confidenceStyle.Render(fmt.Sprintf("(%.0f%%)", c.Confidence*100)))

		if len(c.SourceBreakdown) > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(
				"   sources: %d user-stated, %d ai-inferred",
				c.SourceBreakdown["user_stated"],
				c.SourceBreakdown["ai_inferred"])))
			b.WriteString("\n")
		}
	}
	return b.String()
}
