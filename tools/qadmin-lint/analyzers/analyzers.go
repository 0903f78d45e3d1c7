// Package analyzers provides all custom static analyzers for qadmin.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/qdrant-admin/tools/qadmin-lint/analyzers/loopcall"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
	}
}
