package graph

import "fmt"

// ApplyCorrection applies a single user correction and returns a new graph.
// The input graph is never modified.
//
// Rules:
//   - delete removes the node and every edge touching it. Deleting a
//     user-stated node fails with ErrUserStatedNode.
//   - modify replaces the node's label, keeping its ID, type and metadata.
//   - modify_relationship rewrites the relationship tag of the edge
//     identified by (NodeID, TargetNodeID, EdgeRelationship).
//   - remove_edge deletes that edge.
func ApplyCorrection(g *Graph, c Correction) (*Graph, error) {
	switch c.Action {
	case ActionDelete:
		return deleteNode(g, c)
	case ActionModify:
		return modifyNode(g, c)
	case ActionModifyRelationship:
		return rewriteEdge(g, c, false)
	case ActionRemoveEdge:
		return rewriteEdge(g, c, true)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, c.Action)
	}
}

func deleteNode(g *Graph, c Correction) (*Graph, error) {
	node := g.NodeByID(c.NodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, c.NodeID)
	}
	if node.Source == SourceUserStated {
		return nil, fmt.Errorf("%w: %s", ErrUserStatedNode, c.NodeID)
	}

	nodes := make([]Node, 0, len(g.Nodes)-1)
	for _, n := range g.Nodes {
		if n.ID != c.NodeID {
			nodes = append(nodes, n)
		}
	}
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.SourceID != c.NodeID && e.TargetID != c.NodeID {
			edges = append(edges, e)
		}
	}
	return &Graph{Nodes: nodes, Edges: edges}, nil
}

func modifyNode(g *Graph, c Correction) (*Graph, error) {
	if g.NodeByID(c.NodeID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, c.NodeID)
	}

	nodes := make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == c.NodeID {
			n.Label = c.NewValue
		}
		nodes[i] = n
	}
	edges := make([]Edge, len(g.Edges))
	copy(edges, g.Edges)
	return &Graph{Nodes: nodes, Edges: edges}, nil
}

// rewriteEdge handles modify_relationship and remove_edge. The edge is
// matched in its stored direction first, then reversed, so corrections work
// regardless of which endpoint the user named first.
func rewriteEdge(g *Graph, c Correction, remove bool) (*Graph, error) {
	match := func(e Edge) bool {
		if e.Relationship != c.EdgeRelationship {
			return false
		}
		if e.SourceID == c.NodeID && e.TargetID == c.TargetNodeID {
			return true
		}
		return e.SourceID == c.TargetNodeID && e.TargetID == c.NodeID
	}

	found := false
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if !found && match(e) {
			found = true
			if remove {
				continue
			}
			e.Relationship = c.NewValue
		}
		edges = append(edges, e)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s -[%s]-> %s",
			ErrEdgeNotFound, c.NodeID, c.EdgeRelationship, c.TargetNodeID)
	}

	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	return &Graph{Nodes: nodes, Edges: edges}, nil
}
