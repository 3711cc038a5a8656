package usecase

import (
	"context"
	"testing"

	"archlens/internal/adapter/llm"
	"archlens/internal/domain"
)

func sampleComponents() map[string]*domain.CodeComponent {
	return map[string]*domain.CodeComponent{
		"a.py": {
			Path:         "a.py",
			Type:         domain.ComponentModel,
			Language:     "python",
			Dependencies: domain.NewStringSet("b.py", "os"),
			Relationships: map[string]string{
				"b.py": "uses",
			},
		},
		"b.py": {
			Path:         "b.py",
			Type:         domain.ComponentService,
			Language:     "python",
			Dependencies: domain.NewStringSet(),
		},
	}
}

func sampleEntities() map[string]*domain.BusinessEntity {
	return map[string]*domain.BusinessEntity{
		"Order": {
			Name:         "Order",
			Attributes:   domain.NewStringSet("id"),
			Methods:      domain.NewStringSet(),
			Dependencies: domain.NewStringSet("Customer"),
			SourceFiles:  domain.NewStringSet("a.py"),
		},
		"Customer": {
			Name:         "Customer",
			Attributes:   domain.NewStringSet(),
			Methods:      domain.NewStringSet(),
			Dependencies: domain.NewStringSet(),
			SourceFiles:  domain.NewStringSet("a.py"),
		},
	}
}

func sampleServices() map[string]*domain.DockerService {
	return map[string]*domain.DockerService{
		"api": {Name: "api", Image: "api:latest", DependsOn: domain.NewStringSet("db")},
		"db":  {Name: "db", Image: "postgres:16", DependsOn: domain.NewStringSet()},
	}
}

func edgeExists(g *domain.Graph, source, target, edgeType string) bool {
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target && e.Type == edgeType {
			return true
		}
	}
	return false
}

func TestBuildGraphDeclaredEdges(t *testing.T) {
	deps := NewDepsUseCase(newTestClient(t, llm.NewMock()), discardLogger())

	g := deps.BuildGraph(context.Background(), sampleComponents(), sampleEntities(), sampleServices())

	if len(g.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(g.Nodes))
	}
	if !edgeExists(g, "a.py", "b.py", "uses") {
		t.Error("component relationship edge missing")
	}
	if !edgeExists(g, "entity:Order", "entity:Customer", domain.EdgeAssociation) {
		t.Error("entity dependency edge missing")
	}
	if !edgeExists(g, "service:api", "service:db", domain.EdgeRequires) {
		t.Error("service depends_on edge missing")
	}

	// "os" is an external import, not a node; its edge must be dropped.
	for _, e := range g.Edges {
		if e.Target == "os" {
			t.Error("edge to external import must not be added")
		}
	}
	if g.HasNode("os") {
		t.Error("external import must not become a node")
	}
}

func TestBuildGraphDiscoveredEdges(t *testing.T) {
	mock := llm.NewMock()
	mock.Respond("Implicit code dependency analysis",
		`{"implicit_dependencies":[
			{"source":"b.py","target":"a.py","reason":"shared schema"},
			{"source":"b.py","target":"ghost.py","reason":"nope"}]}`)
	mock.Respond("Business entity dependency analysis",
		`{"relationships":[{"source":"Customer","target":"Order","strength":"strong"}]}`)
	mock.Respond("Infrastructure dependency analysis",
		`{"dependencies":[{"source":"api","target":"db","protocol":"tcp"}]}`)
	mock.Respond("Cross-layer dependency analysis",
		`{"cross_layer_dependencies":[
			{"source":"a.py","source_type":"code","target":"Order","target_type":"business","reason":"defines"},
			{"source":"a.py","source_type":"code","target":"Ghost","target_type":"business"}]}`)

	deps := NewDepsUseCase(newTestClient(t, mock), discardLogger())
	g := deps.BuildGraph(context.Background(), sampleComponents(), sampleEntities(), sampleServices())

	if !edgeExists(g, "b.py", "a.py", domain.EdgeImplicit) {
		t.Error("implicit edge missing")
	}
	if !edgeExists(g, "entity:Customer", "entity:Order", domain.EdgeAssociation) {
		t.Error("discovered entity edge missing")
	}
	if !edgeExists(g, "service:api", "service:db", "requires") {
		t.Error("discovered infrastructure edge missing")
	}
	if !edgeExists(g, "a.py", "entity:Order", domain.EdgeCrossLayer) {
		t.Error("cross-layer edge missing")
	}

	for _, e := range g.Edges {
		if e.Target == "ghost.py" || e.Target == "entity:Ghost" {
			t.Errorf("edge to unknown node %s must be dropped", e.Target)
		}
	}
}

func TestBuildGraphEmptyInputs(t *testing.T) {
	mock := llm.NewMock()
	deps := NewDepsUseCase(newTestClient(t, mock), discardLogger())

	g := deps.BuildGraph(context.Background(), nil, nil, nil)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected empty graph, got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	// Empty layers skip their discovery passes; only the cross-layer pass
	// may call out.
	if mock.Calls() > 1 {
		t.Errorf("expected at most one call, got %d", mock.Calls())
	}
}

func TestLayerNodeID(t *testing.T) {
	if layerNodeID("a.py", "code") != "a.py" {
		t.Error("code endpoint should be the raw path")
	}
	if layerNodeID("Order", "business") != "entity:Order" {
		t.Error("business endpoint should be namespaced")
	}
	if layerNodeID("db", "infrastructure") != "service:db" {
		t.Error("infrastructure endpoint should be namespaced")
	}
	if layerNodeID("x", "unknown") != "" {
		t.Error("unknown layer type should map to no node")
	}
}
