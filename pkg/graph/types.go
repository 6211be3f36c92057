package graph

import (
	"strings"
	"time"
)

// Source records the provenance of a node: stated directly by the user or
// inferred by the upstream extraction engine.
type Source string

const (
	SourceUserStated Source = "user-stated"
	SourceAIInferred Source = "ai-inferred"
)

// Well-known node types produced by the ingestion boundary.
const (
	TypePerson      = "Person"
	TypeActivity    = "Activity"
	TypeEnergyState = "EnergyState"
	TypeTimeSlot    = "TimeSlot"
)

// Relationship tags used to label edges.
const (
	RelDrains        = "DRAINS"
	RelConflictsWith = "CONFLICTS_WITH"
	RelRequires      = "REQUIRES"
	RelScheduledAt   = "SCHEDULED_AT"
	RelInvolves      = "INVOLVES"
)

// Node is a single entity in the knowledge graph. Nodes are never mutated in
// place; corrections and consolidation produce replacement nodes.
type Node struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Type     string            `json:"type"`
	Source   Source            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Edge connects two nodes. Edges are directed, but collision traversal
// follows them in both directions.
type Edge struct {
	SourceID     string            `json:"source_id"`
	TargetID     string            `json:"target_id"`
	Relationship string            `json:"relationship"`
	Confidence   float64           `json:"confidence"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Graph holds an ordered node sequence and an ordered edge sequence.
// Transformations return a new Graph and leave their input untouched.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given ID, or nil if absent.
// Edges may reference IDs that no node carries; callers must tolerate nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// NodeIndex builds an ID → node lookup map for repeated access.
func (g *Graph) NodeIndex() map[string]Node {
	idx := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// EdgesTouching returns every edge where nodeID is source or target.
func (g *Graph) EdgesTouching(nodeID string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.SourceID == nodeID || e.TargetID == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// ScoredCollision is a detected collision rendered for the consumer: an
// alternating entity/relationship label sequence plus a confidence score.
// The first and last entity labels may carry a "[DOMAIN] " prefix.
type ScoredCollision struct {
	Path            []string       `json:"path"`
	Confidence      float64        `json:"confidence"`
	SourceBreakdown map[string]int `json:"source_breakdown,omitempty"`
}

// StripDomainPrefix removes a leading "[DOMAIN]" marker from a path label.
// Both "[SOCIAL] Aunt Susan" and "[SOCIAL]Aunt Susan" yield "Aunt Susan".
// Labels without a prefix are returned unchanged.
func StripDomainPrefix(label string) string {
	if strings.HasPrefix(label, "[") {
		if end := strings.Index(label, "]"); end != -1 {
			return strings.TrimLeft(label[end+1:], " \t")
		}
	}
	return label
}

// Action names a correction operation.
type Action string

const (
	ActionDelete             Action = "delete"
	ActionModify             Action = "modify"
	ActionModifyRelationship Action = "modify_relationship"
	ActionRemoveEdge         Action = "remove_edge"
)

// Correction is a user-requested change to the graph. Edge-scoped actions
// additionally identify the far endpoint and the relationship tag.
type Correction struct {
	NodeID           string `json:"node_id"`
	Action           Action `json:"action"`
	NewValue         string `json:"new_value,omitempty"`
	TargetNodeID     string `json:"target_node_id,omitempty"`
	EdgeRelationship string `json:"edge_relationship,omitempty"`
}

// Acknowledgment records that the user has seen and dismissed a collision.
// CollisionKey is the normalized form of the collision's leading entity label.
type Acknowledgment struct {
	CollisionKey string    `json:"collision_key"`
	NodeLabel    string    `json:"node_label"`
	Path         []string  `json:"path"`
	Timestamp    time.Time `json:"timestamp"`
}
