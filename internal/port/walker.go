package port

// FileWalker selects the files to analyze under a root directory.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path     string
	RelPath  string
	Language string
	ModTime  int64
	Size     int64
}
