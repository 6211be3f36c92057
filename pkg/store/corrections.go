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

// correctionsDocument is the on-disk corrections log shape.
type correctionsDocument struct {
	Version     string             `json:"version"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Corrections []graph.Correction `json:"corrections"`
}

// CorrectionStore is an append-only log of applied corrections, kept so a
// rebuilt graph can replay them.
type CorrectionStore struct {
	path string
	log  logging.Logger
}

// NewCorrectionStore creates a store at the default data path.
func NewCorrectionStore(log logging.Logger) (*CorrectionStore, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return NewCorrectionStoreAt(filepath.Join(dir, "corrections.json"), log), nil
}

// NewCorrectionStoreAt creates a store at an explicit path.
func NewCorrectionStoreAt(path string, log logging.Logger) *CorrectionStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &CorrectionStore{path: path, log: log}
}

// Append records a correction.
func (s *CorrectionStore) Append(c graph.Correction) error {
	existing, err := s.All()
	if err != nil {
		return err
	}
	doc := correctionsDocument{
		Version:     schemaVersion,
		UpdatedAt:   time.Now().UTC(),
		Corrections: append(existing, c),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding corrections: %w", err)
	}
	return writeAtomic(s.path, data)
}

// All returns every recorded correction in order. A missing or corrupt file
// yields an empty log; corruption is logged, not fatal, since the log is
// advisory.
func (s *CorrectionStore) All() ([]graph.Correction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading corrections: %w", err)
	}

	var doc correctionsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("corrections file corrupt, starting fresh", logging.Error(err))
		return nil, nil
	}
	return doc.Corrections, nil
}
