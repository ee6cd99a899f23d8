// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/export"
	"github.com/passkeep/passkeep/internal/i18n"
)

// exportCmd dumps the vault as plaintext in a chosen format.
var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export vault entries as txt, csv, or json",
	Long: `Writes every vault entry, passwords included, to a file or stdout.

The output is plaintext by design so it can feed other tools or a manual
migration. Treat the resulting file accordingly.

Examples:
  # Print the vault as readable text blocks
  passkeep export

  # Write a CSV for a spreadsheet import
  passkeep export vault.csv --format csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(format)
		switch format {
		case export.FormatTXT, export.FormatCSV, export.FormatJSON:
		default:
			return fmt.Errorf("%s", i18n.T("export.cli_unknown_format", format))
		}

		entries, err := db.GetAllEntries()
		if err != nil {
			return fmt.Errorf("%s", i18n.T("export.cli_error_entries", err))
		}

		if len(args) == 0 {
			// Stream to stdout; no status line so the output stays parseable.
			if err := export.Write(os.Stdout, format, entries); err != nil {
				return fmt.Errorf("%s", i18n.T("export.cli_error_write", err))
			}
			return nil
		}

		outputFile := args[0]
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("export.cli_error_write", err))
		}
		defer func() { _ = f.Close() }()
		if err := export.Write(f, format, entries); err != nil {
			return fmt.Errorf("%s", i18n.T("export.cli_error_write", err))
		}

		fmt.Println(i18n.T("export.cli_success", len(entries), outputFile))
		return nil
	},
}

// registerExportFlags sets up flags for the export command (only if not
// already defined).
func registerExportFlags() {
	if exportCmd.Flags().Lookup("format") == nil {
		exportCmd.Flags().StringP("format", "f", export.FormatTXT, "Output format: txt, csv, or json")
	}
}
