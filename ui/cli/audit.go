// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
)

// auditCmd prints recent audit log rows, newest first.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit log",
	Long: `Lists audit log entries recording vault mutations, profile changes,
backup imports, and failed unlock attempts. Details never contain
passwords. Newest entries come first.`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := db.GetAllAuditLogEntries()
		if err != nil {
			return fmt.Errorf("%s", i18n.T("audit.cli_error", err))
		}
		if len(entries) == 0 {
			fmt.Println(i18n.T("audit.cli_empty"))
			return nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tUSER\tACTION\tDETAILS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Username, e.Action, e.Details)
		}
		w.Flush()

		return nil
	},
}

// registerAuditFlags sets up flags for the audit command (only if not
// already defined).
func registerAuditFlags() {
	if auditCmd.Flags().Lookup("limit") == nil {
		auditCmd.Flags().IntP("limit", "n", 20, "Maximum rows to show (0 for all)")
	}
}
