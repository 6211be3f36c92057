package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
)

// acksDocument is the on-disk acknowledgments shape.
type acksDocument struct {
	Version         string                `json:"version"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Acknowledgments []graph.Acknowledgment `json:"acknowledgments"`
}

// AckStore persists collision acknowledgments keyed by collision key.
// Adding an acknowledgment with an existing key replaces it.
type AckStore struct {
	path string
	log  logging.Logger
}

// NewAckStore creates a store at the default data path.
func NewAckStore(log logging.Logger) (*AckStore, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return NewAckStoreAt(filepath.Join(dir, "acks.json"), log), nil
}

// NewAckStoreAt creates a store at an explicit path.
func NewAckStoreAt(path string, log logging.Logger) *AckStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AckStore{path: path, log: log}
}

// Add records an acknowledgment, replacing any existing one with the same
// collision key.
func (s *AckStore) Add(ack graph.Acknowledgment) error {
	acks, err := s.All()
	if err != nil {
		return err
	}
	if ack.Timestamp.IsZero() {
		ack.Timestamp = time.Now().UTC()
	}

	replaced := false
	for i, existing := range acks {
		if existing.CollisionKey == ack.CollisionKey {
			acks[i] = ack
			replaced = true
			break
		}
	}
	if !replaced {
		acks = append(acks, ack)
	}
	return s.write(acks)
}

// Remove deletes the acknowledgment with the given key, reporting whether
// one existed.
func (s *AckStore) Remove(collisionKey string) (bool, error) {
	acks, err := s.All()
	if err != nil {
		return false, err
	}
	kept := acks[:0]
	removed := false
	for _, a := range acks {
		if a.CollisionKey == collisionKey {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return false, nil
	}
	return true, s.write(kept)
}

// All returns every acknowledgment. A missing or corrupt file yields an
// empty set; corruption is logged so a bad file never blocks detection.
func (s *AckStore) All() ([]graph.Acknowledgment, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading acknowledgments: %w", err)
	}

	var doc acksDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("acknowledgments file corrupt, starting fresh", logging.Error(err))
		return nil, nil
	}
	return doc.Acknowledgments, nil
}

// AcknowledgedKeys returns the set of acknowledged collision keys.
func (s *AckStore) AcknowledgedKeys() (map[string]bool, error) {
	acks, err := s.All()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(acks))
	for _, a := range acks {
		keys[a.CollisionKey] = true
	}
	return keys, nil
}

func (s *AckStore) write(acks []graph.Acknowledgment) error {
	doc := acksDocument{
		Version:         schemaVersion,
		UpdatedAt:       time.Now().UTC(),
		Acknowledgments: acks,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding acknowledgments: %w", err)
	}
	return writeAtomic(s.path, data)
}
