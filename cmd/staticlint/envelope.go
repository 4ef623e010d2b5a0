package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// modelsPath identifies the package that owns Envelope.
const modelsPath = "internal/models"

// EnvelopeAnalyzer keeps Envelope.Success consistent with StatusCode by
// forbidding code outside the models package from setting it directly.
// Test files are not checked.
var EnvelopeAnalyzer = &analysis.Analyzer{
	Name:     "envelopelint",
	Doc:      "reports models.Envelope values whose Success field is set by hand instead of by models.NewEnvelope",
	Run:      runEnvelope,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func isEnvelope(t types.Type) bool {
	if t == nil {
		return false
	}
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	return obj.Name() == "Envelope" && obj.Pkg() != nil && strings.HasSuffix(obj.Pkg().Path(), modelsPath)
}

func runEnvelope(pass *analysis.Pass) (interface{}, error) {
	if strings.HasSuffix(pass.Pkg.Path(), modelsPath) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CompositeLit)(nil),
		(*ast.AssignStmt)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		// tests spell out expected envelopes
		if strings.HasSuffix(pass.Fset.File(n.Pos()).Name(), "_test.go") {
			return
		}

		switch n := n.(type) {
		case *ast.CompositeLit:
			if !isEnvelope(pass.TypesInfo.TypeOf(n)) || len(n.Elts) == 0 {
				return
			}
			for _, elt := range n.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					pass.Reportf(n.Pos(), "unkeyed models.Envelope literal sets Success; use models.NewEnvelope")
					return
				}
				if key, ok := kv.Key.(*ast.Ident); ok && key.Name == "Success" {
					pass.Reportf(kv.Pos(), "models.Envelope.Success is derived from StatusCode; use models.NewEnvelope")
				}
			}

		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				sel, ok := lhs.(*ast.SelectorExpr)
				if !ok || sel.Sel.Name != "Success" {
					continue
				}
				if isEnvelope(pass.TypesInfo.TypeOf(sel.X)) {
					pass.Reportf(sel.Pos(), "models.Envelope.Success is derived from StatusCode; use models.NewEnvelope")
				}
			}
		}
	})

	return nil, nil
}
