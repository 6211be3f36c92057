package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
)

// graphDocument is the on-disk snapshot shape.
type graphDocument struct {
	Version   string       `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Nodes     []graph.Node `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
}

// GraphStore persists graph snapshots. When Compress is set, documents are
// snappy-framed; Load transparently reads both forms so turning compression
// on or off never strands old snapshots.
type GraphStore struct {
	path     string
	compress bool
	log      logging.Logger
}

// GraphStoreOption customizes a GraphStore.
type GraphStoreOption func(*GraphStore)

// WithCompression enables snappy compression of snapshots.
func WithCompression() GraphStoreOption {
	return func(s *GraphStore) { s.compress = true }
}

// WithGraphLogger sets the store's logger.
func WithGraphLogger(log logging.Logger) GraphStoreOption {
	return func(s *GraphStore) { s.log = log }
}

// NewGraphStore creates a store at the default data path.
func NewGraphStore(opts ...GraphStoreOption) (*GraphStore, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return NewGraphStoreAt(filepath.Join(dir, "graph.json"), opts...), nil
}

// NewGraphStoreAt creates a store at an explicit path.
func NewGraphStoreAt(path string, opts ...GraphStoreOption) *GraphStore {
	s := &GraphStore{path: path, log: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot location.
func (s *GraphStore) Path() string { return s.path }

// Save writes the graph, preserving the original created_at of any existing
// snapshot.
func (s *GraphStore) Save(g *graph.Graph) error {
	now := time.Now().UTC()
	doc := graphDocument{
		Version:   schemaVersion,
		CreatedAt: now,
		UpdatedAt: now,
		Nodes:     g.Nodes,
		Edges:     g.Edges,
	}
	if existing, err := s.readDocument(); err == nil {
		doc.CreatedAt = existing.CreatedAt
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	if s.compress {
		data = snappy.Encode(nil, data)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}

	s.log.Info("graph saved",
		logging.NodeCount(len(g.Nodes)),
		logging.EdgeCount(len(g.Edges)))
	return nil
}

// Load reads the snapshot. A missing file yields an empty graph.
func (s *GraphStore) Load() (*graph.Graph, error) {
	doc, err := s.readDocument()
	if errors.Is(err, os.ErrNotExist) {
		return &graph.Graph{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &graph.Graph{Nodes: doc.Nodes, Edges: doc.Edges}, nil
}

func (s *GraphStore) readDocument() (graphDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return graphDocument{}, err
	}
	if decoded, derr := snappy.Decode(nil, data); derr == nil {
		data = decoded
	}

	var doc graphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return graphDocument{}, fmt.Errorf("parsing graph snapshot: %w", err)
	}
	return doc, nil
}
