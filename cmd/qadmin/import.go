package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/parsers"
)

func newImportCmd() *cobra.Command {
	var (
		format string
		model  string
	)

	cmd := &cobra.Command{
		Use:   "import <collection> <file>",
		Short: "Upsert points from a JSON or CSV file",
		Long: "Reads points from a file and upserts them in one batch. Points with text and no vector are " +
			"embedded together. JSON files hold an array of point objects; CSV files need an id column and " +
			"may have text and vector columns, other columns become payload fields.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := readPoints(args[1], format)
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				res, err := d.Handlers.Points.Upsert(cmd.Context(), handlers.UpsertArgs{
					Collection: args[0],
					Points:     points,
					Model:      model,
				})
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "File format: json or csv (default: from extension)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Embedding model (default from config)")

	return cmd
}

// readPoints parses the file with the parser for format, or for its extension
// when format is empty.
func readPoints(path, format string) ([]any, error) {
	parser := parsers.ForFile(path)
	if format != "" {
		parser = parsers.ForFormat(format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for %s (use --format json or csv)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	points, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return points, nil
}
