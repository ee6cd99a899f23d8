// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/strength"
	"github.com/passkeep/passkeep/internal/tui"
)

// analyzeCmd scores a password without storing it anywhere.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [password]",
	Short: "Score a password's strength and estimated crack time",
	Long: `Analyzes a password and prints its entropy in bits, a 0-10 score with a
strength label, and a rough offline crack time estimate.

When no argument is given, the password is read from a hidden terminal
prompt so it does not land in your shell history. Passing the password as
an argument is convenient for scripting but visible to other processes.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			var err error
			password, err = readSecretFunc(i18n.T("analyze.cli_prompt"))
			if err != nil {
				return fmt.Errorf("%s", i18n.T("analyze.cli_error_read", err))
			}
		}

		result := strength.Analyze(password)
		crack := strength.EstimateCrackTime(result.Bits)
		fmt.Println(i18n.T("generate.cli_strength", tui.LocalizedStrengthLabel(result.Label), result.Score, result.Bits))
		fmt.Println(i18n.T("generate.cli_crack", tui.LocalizedCrackTime(crack)))

		return nil
	},
}
