package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize qadmin configuration",
		Long:  "Creates a .qadmin directory with default configuration and the audit database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := basePath()
			if err != nil {
				return err
			}

			result, err := handlers.NewInitHandler(openAuditStore).Handle(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
			if result.AuditPath != "" {
				fmt.Fprintf(out, "Created audit log %s\n", result.AuditPath)
			}
			fmt.Fprintf(out, "Default Qdrant: %s\n", result.QdrantURL)
			fmt.Fprintln(out, "qadmin initialized successfully!")
			return nil
		},
	}
}
