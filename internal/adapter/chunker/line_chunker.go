package chunker

import (
	"strings"

	"archlens/internal/domain"
)

// LineChunker splits text into token-bounded chunks along line boundaries.
// A logical line is never split unless a single line alone exceeds the
// budget. The chunker is stateless: the same input always yields the same
// chunks, and the concatenation of all chunks (ignoring overlap) covers the
// whole input.
type LineChunker struct {
	overlap int // token budget of trailing lines repeated in the next chunk
}

// NewLineChunker creates a chunker with the given overlap token budget.
func NewLineChunker(overlap int) *LineChunker {
	return &LineChunker{overlap: overlap}
}

// Split splits text into chunks whose estimated token count does not exceed
// maxTokens. Empty input yields no chunks; input within budget yields
// exactly one chunk equal to the whole input.
func (c *LineChunker) Split(text string, maxTokens int) []domain.Chunk {
	if text == "" {
		return nil
	}
	if maxTokens <= 0 {
		maxTokens = 1
	}

	lines := strings.Split(text, "\n")
	var chunks []domain.Chunk
	startLine := 0

	for startLine < len(lines) {
		endLine := startLine
		currentTokens := 0
		var chunkText strings.Builder

		for endLine < len(lines) {
			lineTokens := EstimateTokens(lines[endLine])
			if currentTokens > 0 && currentTokens+lineTokens > maxTokens {
				break
			}
			if chunkText.Len() > 0 {
				chunkText.WriteString("\n")
			}
			chunkText.WriteString(lines[endLine])
			currentTokens += lineTokens
			endLine++
		}

		// A single oversized line still ships as its own chunk.
		if endLine == startLine {
			chunkText.WriteString(lines[endLine])
			currentTokens = EstimateTokens(lines[endLine])
			endLine++
		}

		chunks = append(chunks, domain.Chunk{
			Index:     len(chunks),
			StartLine: startLine + 1,
			EndLine:   endLine,
			Tokens:    currentTokens,
			Text:      chunkText.String(),
		})

		if endLine >= len(lines) {
			break
		}

		overlapLines := c.overlapLines(lines, startLine, endLine)
		newStart := endLine - overlapLines
		if newStart <= startLine {
			newStart = startLine + 1
		}
		if newStart > endLine {
			newStart = endLine
		}
		startLine = newStart
	}

	return chunks
}

// overlapLines counts how many trailing lines of the finished chunk fit in
// the overlap token budget.
func (c *LineChunker) overlapLines(lines []string, start, end int) int {
	if c.overlap == 0 {
		return 0
	}

	overlapLines := 0
	tokens := 0
	for i := end - 1; i >= start && tokens < c.overlap; i-- {
		tokens += EstimateTokens(lines[i])
		overlapLines++
	}
	return overlapLines
}
