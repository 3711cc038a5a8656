package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"archlens/internal/domain"
)

// StaticAnalysis holds the baseline facts the structural pass extracts
// without any model call.
type StaticAnalysis struct {
	Language string
	Lines    int
	Chars    int
	Branches int
	Imports  []string
}

var (
	pythonImportRe = regexp.MustCompile(`(?m)^\s*(?:from\s+([\w.]+)\s+import|import\s+([\w.]+))`)
	jsImportRe     = regexp.MustCompile(`(?m)(?:from\s+['"]([^'"]+)['"]|require\(\s*['"]([^'"]+)['"]\s*\))`)
	goImportRe     = regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:[\w.]+\s+)?"([\w./-]+)"`)

	branchKeywords = []string{"if ", "for ", "while ", "case ", "switch ", "elif ", "else if", "catch ", "except"}
)

// Analyze runs the structural pass on one file's content.
func Analyze(language, content string) StaticAnalysis {
	sa := StaticAnalysis{
		Language: language,
		Chars:    len(content),
	}
	if content != "" {
		sa.Lines = strings.Count(content, "\n") + 1
	}
	for _, kw := range branchKeywords {
		sa.Branches += strings.Count(content, kw)
	}
	sa.Imports = extractImports(language, content)
	return sa
}

// Complexity folds the structural facts into a single score. The scale is
// arbitrary; only relative ordering between files matters.
func Complexity(sa StaticAnalysis) float64 {
	return float64(sa.Branches) + float64(sa.Lines)/100.0
}

// Metrics exposes the structural facts as named metrics.
func (sa StaticAnalysis) Metrics() map[string]float64 {
	return map[string]float64{
		"lines":    float64(sa.Lines),
		"chars":    float64(sa.Chars),
		"branches": float64(sa.Branches),
	}
}

func extractImports(language, content string) []string {
	var re *regexp.Regexp
	switch language {
	case "python":
		re = pythonImportRe
	case "javascript":
		re = jsImportRe
	case "go":
		re = goImportRe
	default:
		return nil
	}

	seen := make(map[string]struct{})
	var imports []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		for _, group := range m[1:] {
			if group == "" {
				continue
			}
			if _, ok := seen[group]; ok {
				continue
			}
			seen[group] = struct{}{}
			imports = append(imports, group)
		}
	}
	return imports
}

// ComponentTypeFor classifies a file by its path.
func ComponentTypeFor(relPath string) domain.ComponentType {
	name := filepath.Base(relPath)
	if strings.Contains(name, "Dockerfile") || strings.Contains(name, "docker-compose") ||
		strings.HasSuffix(name, ".conf") {
		return domain.ComponentInfra
	}

	path := filepath.ToSlash(relPath)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "models", "model", "entities":
			return domain.ComponentModel
		case "services", "service", "usecase", "usecases":
			return domain.ComponentService
		case "controllers", "controller", "handlers", "api", "routes":
			return domain.ComponentController
		case "views", "view", "templates", "components", "pages":
			return domain.ComponentView
		}
	}
	return domain.ComponentOther
}
