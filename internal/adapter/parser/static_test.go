package parser

import (
	"testing"

	"archlens/internal/domain"
)

func TestAnalyzePython(t *testing.T) {
	content := `import os
from app.models import Order

def handle(order):
    if order.total > 0:
        return True
    for item in order.items:
        pass
`
	sa := Analyze("python", content)

	if sa.Lines < 8 {
		t.Errorf("expected at least 8 lines, got %d", sa.Lines)
	}
	if sa.Branches < 2 {
		t.Errorf("expected branch count >= 2, got %d", sa.Branches)
	}

	imports := map[string]bool{}
	for _, imp := range sa.Imports {
		imports[imp] = true
	}
	if !imports["os"] || !imports["app.models"] {
		t.Errorf("missing expected imports: %v", sa.Imports)
	}
}

func TestAnalyzeJavaScript(t *testing.T) {
	content := `import { api } from "./api";
const db = require("pg");
`
	sa := Analyze("javascript", content)

	imports := map[string]bool{}
	for _, imp := range sa.Imports {
		imports[imp] = true
	}
	if !imports["./api"] || !imports["pg"] {
		t.Errorf("missing expected imports: %v", sa.Imports)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	sa := Analyze("python", "")
	if sa.Lines != 0 || sa.Chars != 0 {
		t.Errorf("empty content should have zero metrics, got %+v", sa)
	}
}

func TestComplexityOrdering(t *testing.T) {
	simple := Analyze("python", "x = 1\n")
	branchy := Analyze("python", "if a:\n    pass\nif b:\n    pass\nfor i in r:\n    pass\n")

	if Complexity(branchy) <= Complexity(simple) {
		t.Error("branchier file should score higher complexity")
	}
}

func TestComponentTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want domain.ComponentType
	}{
		{"app/models/order.py", domain.ComponentModel},
		{"app/services/billing.py", domain.ComponentService},
		{"app/controllers/api.py", domain.ComponentController},
		{"web/views/page.jsx", domain.ComponentView},
		{"Dockerfile", domain.ComponentInfra},
		{"deploy/docker-compose.yml", domain.ComponentInfra},
		{"nginx/site.conf", domain.ComponentInfra},
		{"scripts/tool.py", domain.ComponentOther},
	}
	for _, tt := range tests {
		if got := ComponentTypeFor(tt.path); got != tt.want {
			t.Errorf("ComponentTypeFor(%s) = %s, want %s", tt.path, got, tt.want)
		}
	}
}
