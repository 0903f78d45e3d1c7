// qadmin-lint is a custom static analyzer that keeps backend and embedding
// calls batched.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/qdrant-admin/tools/qadmin-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
