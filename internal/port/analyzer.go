package port

import (
	"context"

	"archlens/internal/domain"
)

// ChunkAnalyzer turns a chunk of text plus a context hint into structured
// findings. Implementations never return an error: failures degrade to an
// empty Analysis so one bad call cannot abort a run.
type ChunkAnalyzer interface {
	AnalyzeChunk(ctx context.Context, chunk, analysisContext string) domain.Analysis
}
