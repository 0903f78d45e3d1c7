package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

func newAuditCmd() *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent administrative actions",
		Long:  "Lists destructive and write operations recorded in the audit log, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.Audit.Recent(cmd.Context(), action, limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
					return nil
				}
				return displayAudit(cmd.OutOrStdout(), entries)
			})
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Filter by action (e.g. delete_collection)")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultAuditLimit, "Maximum number of entries to display")

	return cmd
}

func displayAudit(w io.Writer, entries []entities.AuditEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tTARGET\tOUTCOME\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.Action, e.Target, e.Outcome, formatDetails(e.Details))
	}
	return tw.Flush()
}

// formatDetails renders details as sorted key=value pairs.
func formatDetails(details map[string]any) string {
	if len(details) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, details[k])
	}
	return strings.Join(parts, " ")
}
