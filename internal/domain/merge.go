package domain

// Merge semantics: identity is the name string at every level. Set-valued
// fields are unioned, rule and critical-path lists are concatenated as-is,
// and step lists are concatenated with exact-duplicate strings dropped in
// first-seen order. The result of merging a list of candidates does not
// depend on arrival order, except for step order which follows first-seen.

// NewBusinessEntity creates an entity from its first observed finding.
func NewBusinessEntity(f EntityFinding) *BusinessEntity {
	return &BusinessEntity{
		Name:         f.Name,
		Attributes:   NewStringSet(f.Attributes...),
		Methods:      NewStringSet(f.Methods...),
		Dependencies: NewStringSet(f.Dependencies...),
		Rules:        append([]string(nil), f.Rules...),
		SourceFiles:  NewStringSet(),
	}
}

// MergeFinding folds another chunk-level observation of the same entity in.
func (e *BusinessEntity) MergeFinding(f EntityFinding) {
	e.Attributes.AddAll(f.Attributes)
	e.Methods.AddAll(f.Methods)
	e.Dependencies.AddAll(f.Dependencies)
	e.Rules = append(e.Rules, f.Rules...)
}

// Merge folds another file- or layer-level entity with the same name in.
// Rules are concatenated without deduplication; duplicates are acceptable
// noise at this level.
func (e *BusinessEntity) Merge(other *BusinessEntity) {
	e.Attributes.Union(other.Attributes)
	e.Methods.Union(other.Methods)
	e.Dependencies.Union(other.Dependencies)
	e.Rules = append(e.Rules, other.Rules...)
	e.SourceFiles.Union(other.SourceFiles)
}

// NewBusinessProcess creates a process from its first observed finding.
func NewBusinessProcess(f ProcessFinding) *BusinessProcess {
	return &BusinessProcess{
		Name:          f.Name,
		Description:   f.Description,
		Steps:         appendNewSteps(nil, f.Steps),
		Entities:      NewStringSet(f.Entities...),
		Dependencies:  NewStringSet(f.Dependencies...),
		CriticalPaths: append([]string(nil), f.CriticalPaths...),
	}
}

// MergeFinding folds another chunk-level observation of the same process in.
func (p *BusinessProcess) MergeFinding(f ProcessFinding) {
	if len(f.Description) > len(p.Description) {
		p.Description = f.Description
	}
	p.Steps = appendNewSteps(p.Steps, f.Steps)
	p.Entities.AddAll(f.Entities)
	p.Dependencies.AddAll(f.Dependencies)
	p.CriticalPaths = append(p.CriticalPaths, f.CriticalPaths...)
}

// Merge folds another file- or layer-level process with the same name in.
// The longer description wins; on a tie the existing one is kept.
func (p *BusinessProcess) Merge(other *BusinessProcess) {
	if len(other.Description) > len(p.Description) {
		p.Description = other.Description
	}
	p.Steps = appendNewSteps(p.Steps, other.Steps)
	p.Entities.Union(other.Entities)
	p.Dependencies.Union(other.Dependencies)
	p.CriticalPaths = append(p.CriticalPaths, other.CriticalPaths...)
}

// appendNewSteps appends incoming steps that are not already present,
// preserving first-seen order. Comparison is exact string equality.
func appendNewSteps(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range incoming {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		existing = append(existing, s)
	}
	return existing
}

// FileAnalysis is the merged result of all chunks of one file.
type FileAnalysis struct {
	Path          string
	Entities      map[string]*BusinessEntity
	Processes     map[string]*BusinessProcess
	Relationships []RelationshipFinding
	Rules         []string
}

// MergeChunkAnalyses folds per-chunk analyses of one file into a single
// file-level result. The first occurrence of a name creates the record;
// later occurrences merge into it.
func MergeChunkAnalyses(path string, analyses []Analysis) FileAnalysis {
	fa := FileAnalysis{
		Path:      path,
		Entities:  make(map[string]*BusinessEntity),
		Processes: make(map[string]*BusinessProcess),
	}
	for _, a := range analyses {
		for _, f := range a.Entities {
			if f.Name == "" {
				continue
			}
			if e, ok := fa.Entities[f.Name]; ok {
				e.MergeFinding(f)
			} else {
				fa.Entities[f.Name] = NewBusinessEntity(f)
			}
		}
		for _, f := range a.Processes {
			if f.Name == "" {
				continue
			}
			if p, ok := fa.Processes[f.Name]; ok {
				p.MergeFinding(f)
			} else {
				fa.Processes[f.Name] = NewBusinessProcess(f)
			}
		}
		fa.Relationships = append(fa.Relationships, a.Relationships...)
		fa.Rules = append(fa.Rules, a.Rules...)
	}
	for _, e := range fa.Entities {
		e.SourceFiles.Add(path)
	}
	return fa
}

// LayerAnalysis accumulates merged results for one layer or for the whole
// project. It is a value threaded through the aggregation, not ambient
// state, so concurrent runs cannot contaminate each other.
type LayerAnalysis struct {
	Entities      map[string]*BusinessEntity
	Processes     map[string]*BusinessProcess
	Relationships []RelationshipFinding
	Rules         []string
}

// NewLayerAnalysis returns an empty accumulator.
func NewLayerAnalysis() *LayerAnalysis {
	return &LayerAnalysis{
		Entities:  make(map[string]*BusinessEntity),
		Processes: make(map[string]*BusinessProcess),
	}
}

// MergeFile folds one file-level result into the accumulator, tracking
// source-file provenance for every entity.
func (l *LayerAnalysis) MergeFile(fa FileAnalysis) {
	for name, e := range fa.Entities {
		if existing, ok := l.Entities[name]; ok {
			existing.Merge(e)
		} else {
			l.Entities[name] = e
		}
	}
	for name, p := range fa.Processes {
		if existing, ok := l.Processes[name]; ok {
			existing.Merge(p)
		} else {
			l.Processes[name] = p
		}
	}
	l.Relationships = append(l.Relationships, fa.Relationships...)
	l.Rules = append(l.Rules, fa.Rules...)
}

// MergeLayer folds another layer accumulator into this one.
func (l *LayerAnalysis) MergeLayer(other *LayerAnalysis) {
	for name, e := range other.Entities {
		if existing, ok := l.Entities[name]; ok {
			existing.Merge(e)
		} else {
			l.Entities[name] = e
		}
	}
	for name, p := range other.Processes {
		if existing, ok := l.Processes[name]; ok {
			existing.Merge(p)
		} else {
			l.Processes[name] = p
		}
	}
	l.Relationships = append(l.Relationships, other.Relationships...)
	l.Rules = append(l.Rules, other.Rules...)
}
