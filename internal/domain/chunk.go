package domain

// Chunk is one token-bounded slice of a file's text, sent as a single
// analysis unit. Index is the chunk's stable position within its file.
type Chunk struct {
	Index     int
	StartLine int
	EndLine   int
	Tokens    int
	Text      string
}
