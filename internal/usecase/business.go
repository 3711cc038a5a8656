package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"archlens/internal/adapter/fs"
	"archlens/internal/domain"
	"archlens/internal/port"
)

// Layer is one architectural layer of the business analysis: a name, the
// glob patterns selecting its files, and the context hint handed to the
// model for those files.
type Layer struct {
	Name     string
	Patterns []string
	Context  string
}

// BusinessUseCase extracts business entities and processes. Layers are
// analyzed concurrently, files within a layer concurrently, chunks within a
// file concurrently; all merging happens on explicit accumulators after the
// fan-out joins, in a fixed order, so results are reproducible.
type BusinessUseCase struct {
	client      port.ChunkAnalyzer
	chunker     port.Chunker
	walker      port.FileWalker
	layers      []Layer
	chunkTokens int
	log         *slog.Logger
}

// NewBusinessUseCase creates a new business analysis use case.
func NewBusinessUseCase(
	client port.ChunkAnalyzer,
	chunker port.Chunker,
	walker port.FileWalker,
	layers []Layer,
	chunkTokens int,
	log *slog.Logger,
) *BusinessUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &BusinessUseCase{
		client:      client,
		chunker:     chunker,
		walker:      walker,
		layers:      layers,
		chunkTokens: chunkTokens,
		log:         log,
	}
}

// BusinessResult contains the merged results of the business analysis pass.
type BusinessResult struct {
	Entities  map[string]*domain.BusinessEntity
	Processes map[string]*domain.BusinessProcess
	Rules     []string
	Chunks    int
}

// Analyze runs every configured layer over the files under root and merges
// the layer results in configuration order.
func (u *BusinessUseCase) Analyze(ctx context.Context, root string) (*BusinessResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	layerResults := make([]*domain.LayerAnalysis, len(u.layers))
	layerChunks := make([]int, len(u.layers))

	g, gctx := errgroup.WithContext(ctx)
	for i, layer := range u.layers {
		g.Go(func() error {
			layerResults[i], layerChunks[i] = u.analyzeLayer(gctx, layer, files)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	project := domain.NewLayerAnalysis()
	chunks := 0
	for i, lr := range layerResults {
		project.MergeLayer(lr)
		chunks += layerChunks[i]
	}

	// Chunk-level relationship findings become entity dependencies once both
	// endpoints are known project-wide.
	for _, rel := range project.Relationships {
		src, ok := project.Entities[rel.Source]
		if !ok {
			continue
		}
		if _, ok := project.Entities[rel.Target]; !ok {
			continue
		}
		src.Dependencies.Add(rel.Target)
	}

	u.crossLayerPass(ctx, project)

	return &BusinessResult{
		Entities:  project.Entities,
		Processes: project.Processes,
		Rules:     project.Rules,
		Chunks:    chunks,
	}, nil
}

// analyzeLayer analyzes the layer's files concurrently and merges them in
// path order.
func (u *BusinessUseCase) analyzeLayer(ctx context.Context, layer Layer, files []port.FileInfo) (*domain.LayerAnalysis, int) {
	var selected []port.FileInfo
	for _, f := range files {
		if f.Language == "docker" {
			continue
		}
		if fs.MatchAny(layer.Patterns, f.RelPath) {
			selected = append(selected, f)
		}
	}

	results := make([]domain.FileAnalysis, len(selected))
	counts := make([]int, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range selected {
		g.Go(func() error {
			results[i], counts[i] = u.analyzeFile(gctx, layer, f)
			return nil
		})
	}
	g.Wait()

	// The walker returns files sorted, so index order is path order.
	la := domain.NewLayerAnalysis()
	chunks := 0
	for i, fa := range results {
		la.MergeFile(fa)
		chunks += counts[i]
	}
	return la, chunks
}

// analyzeFile splits one file into chunks, analyzes them concurrently, and
// merges the chunk findings into a file-level result. An unreadable file
// yields an empty result; the run continues.
func (u *BusinessUseCase) analyzeFile(ctx context.Context, layer Layer, f port.FileInfo) (domain.FileAnalysis, int) {
	content, err := fs.ReadFile(f.Path)
	if err != nil {
		u.log.Warn("failed to read file", "path", f.RelPath, "error", err)
		return domain.MergeChunkAnalyses(f.RelPath, nil), 0
	}

	chunks := u.chunker.Split(content, u.chunkTokens)
	analyses := make([]domain.Analysis, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			analysisContext := fmt.Sprintf("%s - File: %s", layer.Context, f.RelPath)
			analyses[i] = u.client.AnalyzeChunk(gctx, chunk.Text, analysisContext)
			return nil
		})
	}
	g.Wait()

	return domain.MergeChunkAnalyses(f.RelPath, analyses), len(chunks)
}

// crossLayerPass feeds the merged project state back to the model once and
// applies the returned relationships additively. Findings naming unknown
// entities or processes are dropped.
func (u *BusinessUseCase) crossLayerPass(ctx context.Context, project *domain.LayerAnalysis) {
	if len(project.Entities) == 0 && len(project.Processes) == 0 {
		return
	}

	summary, err := businessSummary(project.Entities, project.Processes)
	if err != nil {
		u.log.Warn("failed to build business summary", "error", err)
		return
	}

	a := u.client.AnalyzeChunk(ctx, summary, "Cross-layer business relationship analysis")

	for _, rel := range a.EntityRelationships {
		src, ok := project.Entities[rel.Source]
		if !ok {
			continue
		}
		if _, ok := project.Entities[rel.Target]; !ok {
			continue
		}
		src.Dependencies.Add(rel.Target)
	}
	for _, rel := range a.ProcessRelationships {
		src, ok := project.Processes[rel.Source]
		if !ok {
			continue
		}
		if _, ok := project.Processes[rel.Target]; !ok {
			continue
		}
		src.Dependencies.Add(rel.Target)
	}
	for name, paths := range a.CriticalPaths {
		if p, ok := project.Processes[name]; ok {
			p.CriticalPaths = append(p.CriticalPaths, paths...)
		}
	}
}
