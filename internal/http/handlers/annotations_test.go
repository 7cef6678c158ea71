package handlers

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestHandlersCarrySwaggerAnnotations(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "dashboard_handlers.go", nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("expected to parse handlers, got %v", err)
	}

	tests := map[string]string{
		"GetDashboardHandler":        "@Router /api/dashboard [get]",
		"PutDashboardHandler":        "@Router /api/dashboard [put]",
		"ConfirmOfferHandler":        "@Router /api/inventory/{id}/confirm [post]",
		"GetDashboardMetricsHandler": "@Router /api/dashboard/metrics [get]",
		"HealthHandler":              "@Router /health [get]",
	}

	seen := map[string]bool{}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !fn.Name.IsExported() {
			continue
		}
		want, ok := tests[fn.Name.Name]
		if !ok {
			t.Errorf("expected an annotation case for %s", fn.Name.Name)
			continue
		}
		seen[fn.Name.Name] = true

		doc := fn.Doc.Text()
		if !strings.Contains(doc, want) {
			t.Errorf("%s: expected %q in doc comment, got %q", fn.Name.Name, want, doc)
		}
		if !strings.Contains(doc, "@Summary ") || !strings.Contains(doc, "@Success ") {
			t.Errorf("%s: expected @Summary and @Success, got %q", fn.Name.Name, doc)
		}
	}
	for name := range tests {
		if !seen[name] {
			t.Errorf("expected handler %s in dashboard_handlers.go", name)
		}
	}
}
