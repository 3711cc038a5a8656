package graphalg

import (
	"testing"

	"archlens/internal/domain"
)

func buildGraph(nodes []string, edges [][2]string) *domain.Graph {
	g := domain.NewGraph()
	for _, id := range nodes {
		g.AddNode(&domain.Node{ID: id, Type: domain.NodeTypeCode})
	}
	for _, e := range edges {
		g.AddEdge(&domain.Edge{Source: e[0], Target: e[1]})
	}
	return g
}

func TestCyclesNone(t *testing.T) {
	g := buildGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	if cycles := Cycles(g); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestCyclesSimple(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}},
	)

	cycles := Cycles(g)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %v", cycles)
	}
	if len(cycles[0]) != 2 || cycles[0][0] != "a" || cycles[0][1] != "b" {
		t.Errorf("expected cycle [a b], got %v", cycles[0])
	}
}

func TestCyclesTwoGroups(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "x", "y", "z"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"x", "y"}, {"y", "z"}, {"z", "x"}},
	)

	cycles := Cycles(g)
	if len(cycles) != 2 {
		t.Fatalf("expected 2 cycles, got %v", cycles)
	}
	if cycles[0][0] != "a" || cycles[1][0] != "x" {
		t.Errorf("cycles not in deterministic order: %v", cycles)
	}
}

func TestCyclesIgnoresSelfEdge(t *testing.T) {
	g := buildGraph([]string{"a"}, [][2]string{{"a", "a"}})
	if cycles := Cycles(g); len(cycles) != 0 {
		t.Errorf("self edge should not report a cycle, got %v", cycles)
	}
}
