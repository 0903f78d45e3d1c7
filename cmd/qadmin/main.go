// Package main provides the entry point for the qadmin CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0-dev"
	globalDir  string
	globalDest string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := newRootCmd()
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qadmin",
		Short:         "An MCP server for administering Qdrant vector databases",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalDir, "dir", "d", "", "Directory containing .qadmin (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&globalDest, "qdrant-url", "", "Qdrant URL overriding the configured one")

	rootCmd.AddCommand(
		newInitCmd(),
		newServeCmd(),
		newStatusCmd(),
		newAuditCmd(),
		newImportCmd(),
	)

	return rootCmd
}
