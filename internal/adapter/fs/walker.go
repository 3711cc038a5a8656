package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"archlens/internal/port"
)

// Walker selects analyzable files under a root: a file is picked when its
// extension belongs to a configured language, or its name contains one of
// the configured special filenames (Dockerfile, docker-compose). Excluded
// paths are matched with doublestar globs against the root-relative path.
type Walker struct {
	excludes []string
	extLang  map[string]string // ".py" -> "python"
	nameLang []namePattern     // filename substring -> language
}

type namePattern struct {
	substr   string
	language string
}

// NewWalker builds a walker from a language -> extensions map. Entries that
// do not start with a dot are treated as filename substrings rather than
// extensions.
func NewWalker(languages map[string][]string, excludes []string) *Walker {
	w := &Walker{
		excludes: excludes,
		extLang:  make(map[string]string),
	}

	langs := make([]string, 0, len(languages))
	for lang := range languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		for _, pat := range languages[lang] {
			if strings.HasPrefix(pat, ".") {
				w.extLang[strings.ToLower(pat)] = lang
			} else {
				w.nameLang = append(w.nameLang, namePattern{substr: pat, language: lang})
			}
		}
	}
	return w
}

// Walk returns the selected files under root in lexical path order.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if w.excluded(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.excluded(relPath) {
			return nil
		}

		lang := w.Language(info.Name())
		if lang == "" {
			return nil
		}

		files = append(files, port.FileInfo{
			Path:     path,
			RelPath:  relPath,
			Language: lang,
			ModTime:  info.ModTime().Unix(),
			Size:     info.Size(),
		})
		return nil
	})

	return files, err
}

// Language returns the configured language for a file name, or "" when the
// file is not analyzable.
func (w *Walker) Language(name string) string {
	for _, np := range w.nameLang {
		if strings.Contains(name, np.substr) {
			return np.language
		}
	}
	if lang, ok := w.extLang[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	return ""
}

func (w *Walker) excluded(relPath string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// MatchAny reports whether relPath matches any of the doublestar patterns.
// Used to assign files to architectural layers.
func MatchAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// ReadFile reads a file as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
