package domain

import (
	"encoding/json"
	"sort"
)

// StringSet is a set of strings that marshals as a sorted JSON array so
// serialized output is stable across runs.
type StringSet map[string]struct{}

// NewStringSet creates a set from the given items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// AddAll inserts every item into the set.
func (s StringSet) AddAll(items []string) {
	for _, v := range items {
		s[v] = struct{}{}
	}
}

// Union inserts every member of other into the set.
func (s StringSet) Union(other StringSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewStringSet(items...)
	return nil
}

// ComponentType classifies a code component by architectural role.
type ComponentType string

const (
	ComponentModel      ComponentType = "model"
	ComponentService    ComponentType = "service"
	ComponentController ComponentType = "controller"
	ComponentView       ComponentType = "view"
	ComponentInfra      ComponentType = "infra"
	ComponentOther      ComponentType = "other"
)

// CodeComponent describes one analyzed source file.
type CodeComponent struct {
	Path          string             `json:"path"`
	Type          ComponentType      `json:"type"`
	Language      string             `json:"language"`
	Complexity    float64            `json:"complexity"`
	Dependencies  StringSet          `json:"dependencies"`
	Metrics       map[string]float64 `json:"metrics"`
	Relationships map[string]string  `json:"relationships"` // target -> relation type
}

// BusinessEntity is a domain concept discovered in one or more files.
// Entities with the same name are the same logical entity and get merged,
// never duplicated.
type BusinessEntity struct {
	Name         string    `json:"name"`
	Attributes   StringSet `json:"attributes"`
	Methods      StringSet `json:"methods"`
	Dependencies StringSet `json:"dependencies"`
	Rules        []string  `json:"rules"`
	SourceFiles  StringSet `json:"source_files"`
}

// BusinessProcess is a workflow discovered across chunks and files.
type BusinessProcess struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Steps         []string  `json:"steps"`
	Entities      StringSet `json:"entities_involved"`
	Dependencies  StringSet `json:"dependencies"`
	CriticalPaths []string  `json:"critical_paths"`
}

// DockerService is one service from a compose file or Dockerfile.
type DockerService struct {
	Name        string            `json:"name"`
	Image       string            `json:"image"`
	DependsOn   StringSet         `json:"depends_on"`
	Ports       []string          `json:"ports"`
	Volumes     []string          `json:"volumes"`
	Environment map[string]string `json:"environment"`
}
