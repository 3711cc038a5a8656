package domain

// ProjectAnalysis is the complete merged result of one analysis run.
type ProjectAnalysis struct {
	Root       string                      `json:"root"`
	Components map[string]*CodeComponent   `json:"components"`
	Entities   map[string]*BusinessEntity  `json:"entities"`
	Processes  map[string]*BusinessProcess `json:"processes"`
	Services   map[string]*DockerService   `json:"services"`
	Graph      *Graph                      `json:"graph"`
	Stats      RunStats                    `json:"stats"`
}

// RunStats summarizes the work a run performed.
type RunStats struct {
	FilesAnalyzed  int   `json:"files_analyzed"`
	FilesFailed    int   `json:"files_failed"`
	ChunksAnalyzed int   `json:"chunks_analyzed"`
	ExternalCalls  int64 `json:"external_calls"`
}
