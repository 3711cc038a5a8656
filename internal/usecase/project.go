package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"archlens/internal/domain"
)

// ProjectUseCase runs the full pipeline: code and business analysis in
// parallel, then the dependency graph over their merged results.
type ProjectUseCase struct {
	code     *CodeUseCase
	business *BusinessUseCase
	deps     *DepsUseCase
	calls    func() int64
	log      *slog.Logger
}

// NewProjectUseCase creates the pipeline. calls, when set, reports how many
// external model calls were made and is sampled once at the end of a run.
func NewProjectUseCase(
	code *CodeUseCase,
	business *BusinessUseCase,
	deps *DepsUseCase,
	calls func() int64,
	log *slog.Logger,
) *ProjectUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ProjectUseCase{
		code:     code,
		business: business,
		deps:     deps,
		calls:    calls,
		log:      log,
	}
}

// Analyze analyzes the project rooted at root.
func (u *ProjectUseCase) Analyze(ctx context.Context, root string) (*domain.ProjectAnalysis, error) {
	var (
		codeRes *CodeResult
		bizRes  *BusinessResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		codeRes, err = u.code.Analyze(gctx, root)
		return err
	})
	g.Go(func() error {
		var err error
		bizRes, err = u.business.Analyze(gctx, root)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := u.deps.BuildGraph(ctx, codeRes.Components, bizRes.Entities, codeRes.Services)

	stats := domain.RunStats{
		FilesAnalyzed:  codeRes.Files,
		FilesFailed:    codeRes.FilesFailed,
		ChunksAnalyzed: codeRes.Chunks + bizRes.Chunks,
	}
	if u.calls != nil {
		stats.ExternalCalls = u.calls()
	}

	u.log.Info("analysis complete",
		"files", stats.FilesAnalyzed,
		"entities", len(bizRes.Entities),
		"processes", len(bizRes.Processes),
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges))

	return &domain.ProjectAnalysis{
		Root:       root,
		Components: codeRes.Components,
		Entities:   bizRes.Entities,
		Processes:  bizRes.Processes,
		Services:   codeRes.Services,
		Graph:      graph,
		Stats:      stats,
	}, nil
}
