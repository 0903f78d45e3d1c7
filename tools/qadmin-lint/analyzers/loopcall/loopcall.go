// Package loopcall detects backend and embedding calls inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports per-item backend or embedding calls made inside a loop.
// Points operations take whole id or point lists and embedding takes a whole
// batch, so a call per element is always a missed batch.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects backend and embedding calls inside loops that should be batched",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// batchedMethods are the methods that accept a whole batch.
var batchedMethods = map[string]bool{
	// Embedder and EmbeddingProvider
	"Embed":      true,
	"EmbedBatch": true,
	// Backend points operations
	"Upsert":       true,
	"Retrieve":     true,
	"DeletePoints": true,
	"Query":        true,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Closures defined in a loop run later, not per iteration.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if name := sel.Sel.Name; batchedMethods[name] {
				pass.Reportf(call.Pos(),
					"potential N+1: %s called inside loop - pass the whole batch instead",
					name)
			}

			return true
		})
	})

	return nil, nil
}
