package store

import (
	"path/filepath"
	"testing"
	"time"

	"archlens/internal/domain"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string) Run {
	g := domain.NewGraph()
	g.AddNode(&domain.Node{ID: "entity:Order", Type: domain.NodeTypeBiz})

	return Run{
		ID:        id,
		CreatedAt: time.Now().Unix(),
		Result: domain.ProjectAnalysis{
			Root: "/tmp/project",
			Entities: map[string]*domain.BusinessEntity{
				"Order": {
					Name:        "Order",
					Attributes:  domain.NewStringSet("id", "total"),
					Methods:     domain.NewStringSet(),
					SourceFiles: domain.NewStringSet("models/order.py"),
				},
			},
			Graph: g,
			Stats: domain.RunStats{FilesAnalyzed: 1, ChunksAnalyzed: 3},
		},
	}
}

func TestPutGetRun(t *testing.T) {
	s := newTestStore(t)

	run := sampleRun("20260101T000000.000000000")
	if err := s.PutRun(run); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatal(err)
	}

	entity := got.Result.Entities["Order"]
	if entity == nil {
		t.Fatal("Order entity missing after roundtrip")
	}
	if !entity.Attributes.Has("total") {
		t.Error("attribute set lost in roundtrip")
	}
	if got.Result.Stats.ChunksAnalyzed != 3 {
		t.Errorf("stats lost in roundtrip: %+v", got.Result.Stats)
	}
	if !got.Result.Graph.HasNode("entity:Order") {
		t.Error("graph node lost in roundtrip")
	}
}

func TestLatestRun(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{
		"20260101T000000.000000000",
		"20260102T000000.000000000",
		"20260103T000000.000000000",
	} {
		if err := s.PutRun(sampleRun(id)); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := s.LatestRun()
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != "20260103T000000.000000000" {
		t.Errorf("expected newest run, got %s", latest.ID)
	}

	ids, err := s.ListRunIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 runs, got %d", len(ids))
	}
}

func TestLatestRunEmpty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LatestRun(); err == nil {
		t.Error("expected error when no runs stored")
	}
}

func TestNewRunID_Sortable(t *testing.T) {
	a := NewRunID(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewRunID(time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC))
	if !(a < b) {
		t.Errorf("run ids must sort chronologically: %s vs %s", a, b)
	}
}
