package domain

import (
	"reflect"
	"testing"
)

func TestEntityAttributeUnion(t *testing.T) {
	a := NewBusinessEntity(EntityFinding{Name: "Order", Attributes: []string{"a", "b"}})
	b := NewBusinessEntity(EntityFinding{Name: "Order", Attributes: []string{"b", "c"}})

	a.Merge(b)

	want := []string{"a", "b", "c"}
	if got := a.Attributes.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("attribute union = %v, want %v", got, want)
	}
}

func TestEntityRulesConcatenated(t *testing.T) {
	a := NewBusinessEntity(EntityFinding{Name: "Order", Rules: []string{"r1"}})
	b := NewBusinessEntity(EntityFinding{Name: "Order", Rules: []string{"r1", "r2"}})

	a.Merge(b)

	// Rules are concatenated, not deduplicated.
	want := []string{"r1", "r1", "r2"}
	if !reflect.DeepEqual(a.Rules, want) {
		t.Errorf("rules = %v, want %v", a.Rules, want)
	}
}

func TestProcessStepDedup(t *testing.T) {
	a := NewBusinessProcess(ProcessFinding{Name: "Checkout", Steps: []string{"validate", "save"}})
	b := NewBusinessProcess(ProcessFinding{Name: "Checkout", Steps: []string{"save", "notify"}})

	a.Merge(b)

	want := []string{"validate", "save", "notify"}
	if !reflect.DeepEqual(a.Steps, want) {
		t.Errorf("steps = %v, want %v", a.Steps, want)
	}
}

func TestProcessLongerDescriptionWins(t *testing.T) {
	a := NewBusinessProcess(ProcessFinding{Name: "Checkout", Description: "short"})
	b := NewBusinessProcess(ProcessFinding{Name: "Checkout", Description: "a much longer description"})

	a.Merge(b)
	if a.Description != "a much longer description" {
		t.Errorf("expected longer description to win, got %q", a.Description)
	}

	// Ties keep the existing value.
	c := NewBusinessProcess(ProcessFinding{Name: "Checkout", Description: "equally long descriptions"})
	a.Merge(c)
	if a.Description != "a much longer description" {
		t.Errorf("tie should keep existing description, got %q", a.Description)
	}
}

func TestMergeChunkAnalysesFirstOccurrenceCreates(t *testing.T) {
	analyses := []Analysis{
		{Entities: []EntityFinding{{Name: "Order", Attributes: []string{"id"}}}},
		{Entities: []EntityFinding{{Name: "Order", Methods: []string{"total"}}}},
		{Processes: []ProcessFinding{{Name: "Checkout", Steps: []string{"validate"}}}},
		{}, // a failed chunk contributes nothing
	}

	fa := MergeChunkAnalyses("models/order.py", analyses)

	if len(fa.Entities) != 1 {
		t.Fatalf("expected one merged entity, got %d", len(fa.Entities))
	}
	order := fa.Entities["Order"]
	if !order.Attributes.Has("id") || !order.Methods.Has("total") {
		t.Error("chunk observations not merged into one entity")
	}
	if !order.SourceFiles.Has("models/order.py") {
		t.Error("entity missing source file provenance")
	}
	if len(fa.Processes) != 1 {
		t.Errorf("expected one process, got %d", len(fa.Processes))
	}
}

func TestMergeChunkAnalysesSkipsUnnamed(t *testing.T) {
	fa := MergeChunkAnalyses("f.py", []Analysis{
		{Entities: []EntityFinding{{Name: ""}}},
	})
	if len(fa.Entities) != 0 {
		t.Error("unnamed entities must be dropped")
	}
}

func entityFixture(name string, attrs []string, file string) FileAnalysis {
	fa := FileAnalysis{
		Path:     file,
		Entities: map[string]*BusinessEntity{},
		Processes: map[string]*BusinessProcess{},
	}
	e := NewBusinessEntity(EntityFinding{Name: name, Attributes: attrs})
	e.SourceFiles.Add(file)
	fa.Entities[name] = e
	return fa
}

func TestLayerMergeProvenance(t *testing.T) {
	l := NewLayerAnalysis()
	l.MergeFile(entityFixture("Order", []string{"id"}, "a.py"))
	l.MergeFile(entityFixture("Order", []string{"customer"}, "b.py"))

	order := l.Entities["Order"]
	if got := order.Attributes.Sorted(); !reflect.DeepEqual(got, []string{"customer", "id"}) {
		t.Errorf("attributes = %v", got)
	}
	if !order.SourceFiles.Has("a.py") || !order.SourceFiles.Has("b.py") {
		t.Errorf("source files = %v", order.SourceFiles.Sorted())
	}
}

// Merging [A, B, C] in any order must produce the same final sets.
func TestMergeAssociativity(t *testing.T) {
	mk := func() []FileAnalysis {
		return []FileAnalysis{
			entityFixture("Order", []string{"a", "b"}, "f1.py"),
			entityFixture("Order", []string{"b", "c"}, "f2.py"),
			entityFixture("Order", []string{"d"}, "f3.py"),
		}
	}

	orders := [][]int{
		{0, 1, 2},
		{2, 1, 0},
		{1, 0, 2},
	}

	var results []*LayerAnalysis
	for _, order := range orders {
		files := mk()
		l := NewLayerAnalysis()
		for _, i := range order {
			l.MergeFile(files[i])
		}
		results = append(results, l)
	}

	want := results[0].Entities["Order"]
	for i, l := range results[1:] {
		got := l.Entities["Order"]
		if !reflect.DeepEqual(got.Attributes.Sorted(), want.Attributes.Sorted()) {
			t.Errorf("order %d: attributes differ: %v vs %v",
				i+1, got.Attributes.Sorted(), want.Attributes.Sorted())
		}
		if !reflect.DeepEqual(got.SourceFiles.Sorted(), want.SourceFiles.Sorted()) {
			t.Errorf("order %d: source files differ", i+1)
		}
	}
}

func TestStringSetJSONStable(t *testing.T) {
	s := NewStringSet("c", "a", "b")
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["a","b","c"]` {
		t.Errorf("expected sorted array, got %s", data)
	}

	var back StringSet
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if len(back) != 3 || !back.Has("b") {
		t.Errorf("roundtrip lost members: %v", back.Sorted())
	}
}
