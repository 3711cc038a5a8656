package usecase

import (
	"encoding/json"

	"archlens/internal/domain"
)

// Summaries are compact JSON documents fed back to the model for the
// project-wide discovery passes. Map keys marshal sorted and StringSet
// marshals as a sorted array, so the same state always yields the same
// prompt text and therefore the same cache key.

func componentSummary(components map[string]*domain.CodeComponent) (string, error) {
	type view struct {
		Type         domain.ComponentType `json:"type"`
		Language     string               `json:"language"`
		Complexity   float64              `json:"complexity"`
		Dependencies domain.StringSet     `json:"dependencies"`
	}
	m := make(map[string]view, len(components))
	for path, c := range components {
		m[path] = view{
			Type:         c.Type,
			Language:     c.Language,
			Complexity:   c.Complexity,
			Dependencies: c.Dependencies,
		}
	}
	return marshalSummary(map[string]any{"components": m})
}

func businessSummary(entities map[string]*domain.BusinessEntity, processes map[string]*domain.BusinessProcess) (string, error) {
	type entityView struct {
		Attributes   domain.StringSet `json:"attributes"`
		Methods      domain.StringSet `json:"methods"`
		Dependencies domain.StringSet `json:"dependencies"`
		SourceFiles  domain.StringSet `json:"source_files"`
	}
	type processView struct {
		Description string           `json:"description"`
		Steps       []string         `json:"steps"`
		Entities    domain.StringSet `json:"entities_involved"`
	}

	ev := make(map[string]entityView, len(entities))
	for name, e := range entities {
		ev[name] = entityView{
			Attributes:   e.Attributes,
			Methods:      e.Methods,
			Dependencies: e.Dependencies,
			SourceFiles:  e.SourceFiles,
		}
	}
	pv := make(map[string]processView, len(processes))
	for name, p := range processes {
		pv[name] = processView{
			Description: p.Description,
			Steps:       p.Steps,
			Entities:    p.Entities,
		}
	}
	return marshalSummary(map[string]any{"entities": ev, "processes": pv})
}

func infraSummary(services map[string]*domain.DockerService) (string, error) {
	type view struct {
		Image     string           `json:"image"`
		DependsOn domain.StringSet `json:"depends_on"`
		Ports     []string         `json:"ports"`
	}
	m := make(map[string]view, len(services))
	for name, s := range services {
		m[name] = view{Image: s.Image, DependsOn: s.DependsOn, Ports: s.Ports}
	}
	return marshalSummary(map[string]any{"services": m})
}

// projectSummary condenses all three layers for the cross-layer pass.
func projectSummary(
	components map[string]*domain.CodeComponent,
	entities map[string]*domain.BusinessEntity,
	services map[string]*domain.DockerService,
) (string, error) {
	code := make(map[string]string, len(components))
	for path, c := range components {
		code[path] = string(c.Type)
	}
	biz := make(map[string]domain.StringSet, len(entities))
	for name, e := range entities {
		biz[name] = e.SourceFiles
	}
	infra := make(map[string]string, len(services))
	for name, s := range services {
		infra[name] = s.Image
	}
	return marshalSummary(map[string]any{
		"code":           code,
		"business":       biz,
		"infrastructure": infra,
	})
}

func marshalSummary(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
