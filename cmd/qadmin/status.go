package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check Qdrant availability",
		Long:  "Lists collections on the configured Qdrant and prints the health report as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				report := d.Handlers.Status.Handle(cmd.Context())

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}

				if !report.BackendAvailable {
					return errors.New("qdrant is unavailable")
				}
				return nil
			})
		},
	}
}
