package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"archlens/internal/adapter/fs"
	"archlens/internal/adapter/parser"
	"archlens/internal/domain"
	"archlens/internal/port"
)

// CodeUseCase analyzes source files into code components: a structural pass
// runs locally, then each file's chunks are analyzed concurrently by the
// model and merged. Docker files are parsed into services without a model
// call.
type CodeUseCase struct {
	client      port.ChunkAnalyzer
	chunker     port.Chunker
	walker      port.FileWalker
	chunkTokens int
	log         *slog.Logger

	// Progress, when set, is called after each file finishes.
	Progress func(done, total int)
}

// NewCodeUseCase creates a new code analysis use case.
func NewCodeUseCase(
	client port.ChunkAnalyzer,
	chunker port.Chunker,
	walker port.FileWalker,
	chunkTokens int,
	log *slog.Logger,
) *CodeUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &CodeUseCase{
		client:      client,
		chunker:     chunker,
		walker:      walker,
		chunkTokens: chunkTokens,
		log:         log,
	}
}

// CodeResult contains the results of the code analysis pass.
type CodeResult struct {
	Components  map[string]*domain.CodeComponent
	Services    map[string]*domain.DockerService
	Files       int
	FilesFailed int
	Chunks      int
}

// Analyze walks root and analyzes every selected file. Files are processed
// concurrently; a file that cannot be read is counted as failed and skipped.
func (u *CodeUseCase) Analyze(ctx context.Context, root string) (*CodeResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &CodeResult{
		Components: make(map[string]*domain.CodeComponent),
		Services:   make(map[string]*domain.DockerService),
		Files:      len(files),
	}

	type fileOutcome struct {
		component *domain.CodeComponent
		services  map[string]*domain.DockerService
		chunks    int
		failed    bool
	}
	outcomes := make([]fileOutcome, len(files))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			o := &outcomes[i]
			switch f.Language {
			case "docker":
				o.services, o.failed = u.parseDockerFile(f)
			default:
				o.component, o.chunks, o.failed = u.analyzeFile(gctx, f)
			}

			if u.Progress != nil {
				mu.Lock()
				done++
				u.Progress(done, len(files))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fold results in file order so later passes see a deterministic state.
	for _, o := range outcomes {
		if o.failed {
			result.FilesFailed++
		}
		if o.component != nil {
			result.Components[o.component.Path] = o.component
		}
		for name, svc := range o.services {
			result.Services[name] = svc
		}
		result.Chunks += o.chunks
	}

	u.relationshipPass(ctx, result.Components)

	return result, nil
}

// analyzeFile runs the structural pass and the chunk-level model pass on one
// source file and merges them into a component.
func (u *CodeUseCase) analyzeFile(ctx context.Context, f port.FileInfo) (*domain.CodeComponent, int, bool) {
	content, err := fs.ReadFile(f.Path)
	if err != nil {
		u.log.Warn("failed to read file", "path", f.RelPath, "error", err)
		return nil, 0, true
	}

	static := parser.Analyze(f.Language, content)

	comp := &domain.CodeComponent{
		Path:          f.RelPath,
		Type:          parser.ComponentTypeFor(f.RelPath),
		Language:      f.Language,
		Complexity:    parser.Complexity(static),
		Dependencies:  domain.NewStringSet(static.Imports...),
		Metrics:       static.Metrics(),
		Relationships: make(map[string]string),
	}

	chunks := u.chunker.Split(content, u.chunkTokens)
	analyses := make([]domain.Analysis, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			analysisContext := fmt.Sprintf("Code structure analysis - File: %s (%s)", f.RelPath, f.Language)
			analyses[i] = u.client.AnalyzeChunk(gctx, chunk.Text, analysisContext)
			return nil
		})
	}
	g.Wait()

	for _, a := range analyses {
		for _, dep := range a.Dependencies {
			if dep.Target != "" {
				comp.Dependencies.Add(dep.Target)
			}
		}
		for name, value := range a.Metrics {
			comp.Metrics[name] = value
		}
	}

	return comp, len(chunks), false
}

// parseDockerFile extracts services from a compose file or Dockerfile.
func (u *CodeUseCase) parseDockerFile(f port.FileInfo) (map[string]*domain.DockerService, bool) {
	content, err := fs.ReadFile(f.Path)
	if err != nil {
		u.log.Warn("failed to read file", "path", f.RelPath, "error", err)
		return nil, true
	}

	if strings.Contains(f.RelPath, "docker-compose") {
		services, err := parser.ParseCompose(content)
		if err != nil {
			u.log.Warn("failed to parse compose file", "path", f.RelPath, "error", err)
			return nil, true
		}
		return services, false
	}

	svc := parser.ParseDockerfile(f.RelPath, content)
	return map[string]*domain.DockerService{svc.Name: svc}, false
}

// relationshipPass asks the model for relationships between the discovered
// components, based on a project-level summary. A relation is recorded only
// when both endpoints are known components.
func (u *CodeUseCase) relationshipPass(ctx context.Context, components map[string]*domain.CodeComponent) {
	if len(components) == 0 {
		return
	}

	summary, err := componentSummary(components)
	if err != nil {
		u.log.Warn("failed to build component summary", "error", err)
		return
	}

	a := u.client.AnalyzeChunk(ctx, summary, "Project component relationship analysis")
	for _, rel := range a.Relationships {
		src, ok := components[rel.Source]
		if !ok {
			continue
		}
		if _, ok := components[rel.Target]; !ok {
			continue
		}
		relType := rel.Type
		if relType == "" {
			relType = domain.EdgeAssociation
		}
		src.Relationships[rel.Target] = relType
	}
}

// sortedKeys returns the map keys in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
