package domain

// Analysis is the structured result of one model call. Every field is
// optional: a missing key in the response is an empty list, and a failed
// call is represented by the zero value. Extra keys in the response are
// ignored.
type Analysis struct {
	Entities               []EntityFinding       `json:"entities,omitempty"`
	Processes              []ProcessFinding      `json:"processes,omitempty"`
	Relationships          []RelationshipFinding `json:"relationships,omitempty"`
	Rules                  []string              `json:"rules,omitempty"`
	Dependencies           []RelationshipFinding `json:"dependencies,omitempty"`
	ImplicitDependencies   []RelationshipFinding `json:"implicit_dependencies,omitempty"`
	CrossLayerDependencies []CrossLayerFinding   `json:"cross_layer_dependencies,omitempty"`
	EntityRelationships    []RelationshipFinding `json:"entity_relationships,omitempty"`
	ProcessRelationships   []RelationshipFinding `json:"process_relationships,omitempty"`
	CriticalPaths          map[string][]string   `json:"critical_paths,omitempty"`
	Metrics                map[string]float64    `json:"metrics,omitempty"`
}

// IsEmpty reports whether the analysis carries no findings at all. A failed
// call and a genuinely empty result are indistinguishable here; the client
// logs the difference.
func (a Analysis) IsEmpty() bool {
	return len(a.Entities) == 0 &&
		len(a.Processes) == 0 &&
		len(a.Relationships) == 0 &&
		len(a.Rules) == 0 &&
		len(a.Dependencies) == 0 &&
		len(a.ImplicitDependencies) == 0 &&
		len(a.CrossLayerDependencies) == 0 &&
		len(a.EntityRelationships) == 0 &&
		len(a.ProcessRelationships) == 0 &&
		len(a.CriticalPaths) == 0 &&
		len(a.Metrics) == 0
}

// EntityFinding is one entity as reported by the model for a single chunk.
type EntityFinding struct {
	Name         string   `json:"name"`
	Attributes   []string `json:"attributes,omitempty"`
	Methods      []string `json:"methods,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Rules        []string `json:"rules,omitempty"`
}

// ProcessFinding is one business process as reported for a single chunk.
type ProcessFinding struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Steps         []string `json:"steps,omitempty"`
	Entities      []string `json:"entities_involved,omitempty"`
	Dependencies  []string `json:"dependencies,omitempty"`
	CriticalPaths []string `json:"critical_paths,omitempty"`
}

// RelationshipFinding is a directed relation between two named things.
type RelationshipFinding struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Strength string `json:"strength,omitempty"`
	Protocol string `json:"protocol,omitempty"`
}

// CrossLayerFinding relates things from different architectural layers, so
// each endpoint carries the layer it belongs to.
type CrossLayerFinding struct {
	Source     string `json:"source"`
	SourceType string `json:"source_type"`
	Target     string `json:"target"`
	TargetType string `json:"target_type"`
	Reason     string `json:"reason,omitempty"`
}
