package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"archlens/internal/domain"
)

var bucketRuns = []byte("runs")

// RunStore persists completed analysis runs, one record per run, keyed by
// a sortable timestamp id.
type RunStore struct {
	db *bbolt.DB
}

// Run is one persisted analysis run.
type Run struct {
	ID        string                 `json:"id"`
	CreatedAt int64                  `json:"created_at"`
	Result    domain.ProjectAnalysis `json:"result"`
}

// NewRunStore opens the run database at path.
func NewRunStore(path string) (*RunStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open run db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &RunStore{db: db}, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// NewRunID returns a sortable id for a run starting now.
func NewRunID(now time.Time) string {
	return now.UTC().Format("20060102T150405.000000000")
}

// PutRun stores a run record.
func (s *RunStore) PutRun(run Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(run.ID), data)
	})
}

// GetRun loads a run by id.
func (s *RunStore) GetRun(id string) (Run, error) {
	var run Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run not found: %s", id)
		}
		return json.Unmarshal(data, &run)
	})
	return run, err
}

// LatestRun loads the most recent run.
func (s *RunStore) LatestRun() (Run, error) {
	var run Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		k, v := tx.Bucket(bucketRuns).Cursor().Last()
		if k == nil {
			return fmt.Errorf("no runs stored")
		}
		return json.Unmarshal(v, &run)
	})
	return run, err
}

// ListRunIDs returns all run ids in chronological order.
func (s *RunStore) ListRunIDs() ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}
