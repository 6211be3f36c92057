package graph

import "fmt"

// ExtractNeighborhood returns the subgraph within depth hops of focalID,
// following edges in both directions, together with every edge whose two
// endpoints both land inside the neighborhood.
func ExtractNeighborhood(g *Graph, focalID string, depth int) (*Graph, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: depth must be non-negative, got %d", ErrInvalidDepth, depth)
	}
	focal := g.NodeByID(focalID)
	if focal == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, focalID)
	}
	if depth == 0 {
		return &Graph{Nodes: []Node{*focal}}, nil
	}

	adjacency := make(map[string][]string)
	for _, e := range g.Edges {
		adjacency[e.SourceID] = append(adjacency[e.SourceID], e.TargetID)
		adjacency[e.TargetID] = append(adjacency[e.TargetID], e.SourceID)
	}

	type entry struct {
		id  string
		hop int
	}
	visited := map[string]bool{focalID: true}
	queue := []entry{{id: focalID, hop: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.hop >= depth {
			continue
		}
		for _, neighbor := range adjacency[current.id] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, entry{id: neighbor, hop: current.hop + 1})
			}
		}
	}

	// Preserve input node order for determinism.
	var nodes []Node
	for _, n := range g.Nodes {
		if visited[n.ID] {
			nodes = append(nodes, n)
		}
	}
	var edges []Edge
	for _, e := range g.Edges {
		if visited[e.SourceID] && visited[e.TargetID] {
			edges = append(edges, e)
		}
	}
	return &Graph{Nodes: nodes, Edges: edges}, nil
}
