package main

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// OsExitAnalyzer forbids os.Exit in func main so deferred cleanup and
// graceful shutdown always run.
var OsExitAnalyzer = &analysis.Analyzer{
	Name:     "osexitlint",
	Doc:      "reports os.Exit calls in func main of package main",
	Run:      runOsExit,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

// render prints an AST node as source.
func render(fset *token.FileSet, x interface{}) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, x); err != nil {
		panic(err)
	}
	return buf.String()
}

func runOsExit(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Body == nil || fn.Recv != nil || fn.Name.Name != "main" {
			return
		}

		// skip files generated by go test
		if strings.Contains(pass.Fset.File(fn.Pos()).Name(), "go-build") {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || sel.Sel.Name != "Exit" {
				return true
			}
			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}

			if pkg, ok := pass.TypesInfo.Uses[ident].(*types.PkgName); ok && pkg.Imported().Path() == "os" {
				pass.Reportf(call.Pos(), "os.Exit call is forbidden in main function: %s", render(pass.Fset, call))
			}

			return true
		})
	})

	return nil, nil
}
