package port

import "archlens/internal/domain"

// Chunker splits raw text into token-bounded segments suitable for a
// single model call.
type Chunker interface {
	Split(text string, maxTokens int) []domain.Chunk
}
