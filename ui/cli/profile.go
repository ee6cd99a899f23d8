// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/security"
	"github.com/passkeep/passkeep/internal/state"
)

// profileCmd is the root command for the passphrase profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the passphrase profile guarding the vault UI",
	Long: `A profile attaches a passphrase to this Passkeep installation. While one
exists, the vault commands and the TUI vault view ask for the passphrase
before showing entries.

Only a bcrypt hash of the passphrase is stored. This is a convenience
gate for shared screens, not encryption: the entries themselves remain
readable in the database file.`,
}

// profileSetCmd creates or replaces the profile passphrase.
var profileSetCmd = &cobra.Command{
	Use:     "set [name]",
	Short:   "Create or replace the profile passphrase",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "default"
		if len(args) == 1 && args[0] != "" {
			name = args[0]
		}

		passphrase, err := readSecretFunc(i18n.T("profile.cli_prompt_passphrase"))
		if err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_read", err))
		}
		confirm, err := readSecretFunc(i18n.T("profile.cli_prompt_confirm"))
		if err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_read", err))
		}
		if passphrase == "" {
			return errors.New("passphrase must not be empty")
		}
		if passphrase != confirm {
			return errors.New(i18n.T("profile.cli_mismatch"))
		}

		pass := security.FromString(passphrase)
		hash, err := security.HashPassphrase(pass)
		pass.Zero()
		if err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_save", err))
		}
		if err := db.SetProfile(name, hash); err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_save", err))
		}

		// A new passphrase invalidates any cached unlock.
		state.PassphraseCache.Clear()

		fmt.Println(i18n.T("profile.cli_saved", name))
		return nil
	},
}

// profileRemoveCmd deletes the profile, leaving the vault ungated.
var profileRemoveCmd = &cobra.Command{
	Use:     "remove",
	Short:   "Remove the profile and its passphrase gate",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := db.GetProfile()
		if err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_remove", err))
		}
		if profile == nil {
			fmt.Println(i18n.T("profile.cli_none"))
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			answer := promptForConfirmation(fmt.Sprintf("Remove profile '%s'? (yes/no): ", profile.Name))
			if answer != "yes" && answer != "y" {
				fmt.Println("Operation cancelled.")
				return nil
			}
		}

		if err := db.DeleteProfile(); err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_remove", err))
		}
		state.PassphraseCache.Clear()

		fmt.Println(i18n.T("profile.cli_removed"))
		return nil
	},
}

// registerProfileCommands registers all profile-related subcommands.
func registerProfileCommands() {
	if !profileSetCmd.HasParent() {
		profileCmd.AddCommand(profileSetCmd)
		profileCmd.AddCommand(profileRemoveCmd)
	}

	// Setup flags for remove (only if not already defined)
	if profileRemoveCmd.Flags().Lookup("force") == nil {
		profileRemoveCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	}
}
