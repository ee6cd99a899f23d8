// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/generator"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
	"github.com/passkeep/passkeep/internal/security"
	"github.com/passkeep/passkeep/internal/state"
	"github.com/passkeep/passkeep/internal/strength"
	"github.com/passkeep/passkeep/internal/tui"
)

// vaultCmd is the root command for vault entry operations.
var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage vault entries (add, list, show, update, delete)",
	Long: `The 'vault' command group manages stored credentials:
  - List entries with search and category filtering
  - View a single entry (password hidden unless --show)
  - Add entries from flags or an interactive prompt
  - Update entry fields
  - Delete entries

When a profile with a passphrase is configured, these commands ask for the
passphrase first (or take it from --passphrase). The vault itself is stored
in plaintext; the gate only keeps casual eyes out of the UI.`,
}

// readSecretFunc reads a secret from the terminal without echo. It is a
// package-level variable so tests can inject a mock implementation.
var readSecretFunc = func(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// promptForConfirmation displays a prompt and reads a line from stdin.
func promptForConfirmation(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}

// promptLine displays a prompt and reads one line of input, trimmed.
func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// ensureVaultUnlocked enforces the profile passphrase gate for vault
// commands. Without a configured profile it is a no-op; once a passphrase
// has been checked the cache keeps the vault open for the process lifetime.
func ensureVaultUnlocked(cmd *cobra.Command) error {
	profile, err := db.GetProfile()
	if err != nil {
		return fmt.Errorf("could not load profile: %w", err)
	}
	if profile == nil || state.PassphraseCache.IsSet() {
		return nil
	}

	passphrase, _ := cmd.Flags().GetString("passphrase")
	if passphrase == "" {
		passphrase, err = readSecretFunc(i18n.T("unlock.prompt", profile.Name) + ": ")
		if err != nil {
			return fmt.Errorf("%s", i18n.T("profile.cli_error_read", err))
		}
	}

	pass := security.FromString(passphrase)
	if !security.CheckPassphrase(profile.PassphraseHash, pass) {
		_ = db.LogAction("UNLOCK_FAILED", fmt.Sprintf("profile=%s attempts=%d", profile.Name, 1))
		return errors.New(i18n.T("unlock.failed", 1))
	}
	state.PassphraseCache.Set(pass.Bytes())
	pass.Zero()
	return nil
}

// resolveEntry finds a vault entry by numeric id or (case-insensitive)
// title. A nil entry with a nil error means nothing matched.
func resolveEntry(identifier string) (*model.VaultEntry, error) {
	if id, parseErr := strconv.Atoi(identifier); parseErr == nil {
		entry, err := db.GetEntry(id)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		if entry != nil {
			return entry, nil
		}
	}

	entries, err := db.GetAllEntries()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if strings.EqualFold(entries[i].Title, identifier) {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// vaultListCmd lists vault entries with optional filtering.
var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vault entries",
	Long: `Display all vault entries in table format with their usernames, categories
and strength labels. Passwords are never printed here.`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureVaultUnlocked(cmd); err != nil {
			return err
		}

		searchTerm, _ := cmd.Flags().GetString("search")
		categoryFilter, _ := cmd.Flags().GetString("category")

		var entries []model.VaultEntry
		var err error
		switch {
		case categoryFilter != "":
			if err := db.ValidateCategoryFilter(categoryFilter); err != nil {
				return fmt.Errorf("invalid category filter: %w", err)
			}
			entries, err = db.FilterEntriesByCategory(categoryFilter)
		case searchTerm != "":
			entries, err = db.SearchEntries(searchTerm)
		default:
			entries, err = db.GetAllEntries()
		}
		if err != nil {
			return fmt.Errorf("%s", i18n.T("vault.cli_error_list", err))
		}

		if len(entries) == 0 {
			fmt.Println(i18n.T("vault.cli_empty"))
			return nil
		}

		// Display as table
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tUSERNAME\tCATEGORY\tSTRENGTH\tUPDATED")
		for _, e := range entries {
			label := strength.Analyze(e.Password).Label
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Title, e.Username, e.Category,
				tui.LocalizedStrengthLabel(label), e.UpdatedAt.Format("2006-01-02"))
		}
		w.Flush()

		return nil
	},
}

// vaultShowCmd displays detailed information about a specific entry.
var vaultShowCmd = &cobra.Command{
	Use:   "show <id or title>",
	Short: "Show a single vault entry",
	Long: `Display full details of a vault entry. The password stays hidden unless
--show is given; --copy puts it on the clipboard without printing it.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureVaultUnlocked(cmd); err != nil {
			return err
		}

		entry, err := resolveEntry(args[0])
		if err != nil {
			return fmt.Errorf("%s", i18n.T("vault.cli_error_list", err))
		}
		if entry == nil {
			fmt.Println(i18n.T("vault.cli_not_found", args[0]))
			return nil
		}

		showPassword, _ := cmd.Flags().GetBool("show")
		copyFlag, _ := cmd.Flags().GetBool("copy")

		result := strength.Analyze(entry.Password)
		crack := strength.EstimateCrackTime(result.Bits)

		fmt.Printf("ID:        %d\n", entry.ID)
		fmt.Printf("Title:     %s\n", entry.Title)
		fmt.Printf("Username:  %s\n", entry.Username)
		if showPassword {
			fmt.Printf("Password:  %s\n", entry.Password)
		} else {
			fmt.Printf("Password:  %s\n", i18n.T("vault.cli_password_hidden"))
		}
		fmt.Printf("URL:       %s\n", entry.URL)
		fmt.Printf("Notes:     %s\n", entry.Notes)
		fmt.Printf("Category:  %s\n", entry.Category)
		fmt.Printf("Created:   %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("Updated:   %s\n", entry.UpdatedAt.Format("2006-01-02 15:04"))
		fmt.Println(i18n.T("generate.cli_strength", tui.LocalizedStrengthLabel(result.Label), result.Score, result.Bits))
		fmt.Println(i18n.T("generate.cli_crack", tui.LocalizedCrackTime(crack)))

		if copyFlag {
			if err := clipboard.WriteAll(entry.Password); err != nil {
				return fmt.Errorf("could not copy to clipboard: %w", err)
			}
			fmt.Println(i18n.T("generate.cli_copied"))
		}

		return nil
	},
}

// vaultAddCmd creates a new vault entry.
var vaultAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new vault entry",
	Long: `Add a vault entry from flags, or interactively when --title is omitted.
Use --generate to fill the password from the configured generator instead
of typing one.`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureVaultUnlocked(cmd); err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		url, _ := cmd.Flags().GetString("url")
		notes, _ := cmd.Flags().GetString("notes")
		category, _ := cmd.Flags().GetString("category")
		generatePassword, _ := cmd.Flags().GetBool("generate")

		if title == "" {
			// Interactive mode: prompt for each field.
			reader := bufio.NewReader(os.Stdin)
			title = promptLine(reader, "Title: ")
			if title == "" {
				return errors.New(i18n.T("vault_form.error_title_required"))
			}
			username = promptLine(reader, "Username: ")
			if !generatePassword && password == "" {
				var err error
				password, err = readSecretFunc("Password (empty to generate): ")
				if err != nil {
					return fmt.Errorf("%s", i18n.T("profile.cli_error_read", err))
				}
				if password == "" {
					generatePassword = true
				}
			}
			url = promptLine(reader, "URL: ")
			notes = promptLine(reader, "Notes: ")
			category = promptLine(reader, "Category: ")
		}

		if generatePassword || password == "" {
			password = generator.Generate(configuredGeneratorConfig())
		}

		em := db.DefaultEntryManager()
		if em == nil {
			return errors.New("no entry manager available")
		}

		entry := model.VaultEntry{
			Title:    strings.TrimSpace(title),
			Username: strings.TrimSpace(username),
			Password: password,
			URL:      strings.TrimSpace(url),
			Notes:    notes,
			Category: strings.TrimSpace(category),
		}
		id, err := em.AddEntry(entry)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("vault.cli_error_add", err))
		}

		result := strength.Analyze(password)
		fmt.Println(i18n.T("vault.cli_added", entry.Title, fmt.Sprintf("id %d", id)))
		fmt.Println(i18n.T("generate.cli_strength", tui.LocalizedStrengthLabel(result.Label), result.Score, result.Bits))
		if generatePassword {
			// Only print a generated password; a typed one is already known.
			fmt.Println(password)
		}

		return nil
	},
}

// vaultUpdateCmd updates fields of an existing entry.
var vaultUpdateCmd = &cobra.Command{
	Use:   "update <id or title>",
	Short: "Update fields of a vault entry",
	Long: `Update title, username, password, URL, notes, or category for an existing
entry. Only the flags you pass are changed; --generate replaces the
password with a fresh one from the configured generator.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureVaultUnlocked(cmd); err != nil {
			return err
		}

		entry, err := resolveEntry(args[0])
		if err != nil {
			return fmt.Errorf("%s", i18n.T("vault.cli_error_list", err))
		}
		if entry == nil {
			fmt.Println(i18n.T("vault.cli_not_found", args[0]))
			return nil
		}

		changed := false
		stringFields := map[string]*string{
			"title":    &entry.Title,
			"username": &entry.Username,
			"password": &entry.Password,
			"url":      &entry.URL,
			"notes":    &entry.Notes,
			"category": &entry.Category,
		}
		for name, target := range stringFields {
			if cmd.Flags().Changed(name) {
				v, _ := cmd.Flags().GetString(name)
				*target = v
				changed = true
			}
		}
		if generatePassword, _ := cmd.Flags().GetBool("generate"); generatePassword {
			entry.Password = generator.Generate(configuredGeneratorConfig())
			changed = true
		}

		if !changed {
			fmt.Println("No fields to update. Use --title, --username, --password, --generate, --url, --notes, or --category.")
			return nil
		}
		if strings.TrimSpace(entry.Title) == "" {
			return errors.New(i18n.T("vault_form.error_title_required"))
		}

		em := db.DefaultEntryManager()
		if em == nil {
			return errors.New("no entry manager available")
		}
		if err := em.UpdateEntry(*entry); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				fmt.Println(i18n.T("vault.cli_not_found", args[0]))
				return nil
			}
			return fmt.Errorf("%s", i18n.T("vault.cli_error_update", err))
		}

		fmt.Println(i18n.T("vault.cli_updated", entry.Title))
		return nil
	},
}

// vaultDeleteCmd removes an entry after confirmation.
var vaultDeleteCmd = &cobra.Command{
	Use:     "delete <id or title>",
	Short:   "Delete a vault entry",
	Long:    `Delete a vault entry. Asks for confirmation unless --force is given.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureVaultUnlocked(cmd); err != nil {
			return err
		}

		entry, err := resolveEntry(args[0])
		if err != nil {
			return fmt.Errorf("%s", i18n.T("vault.cli_error_list", err))
		}
		if entry == nil {
			fmt.Println(i18n.T("vault.cli_not_found", args[0]))
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			answer := promptForConfirmation(fmt.Sprintf("Delete entry '%s'? (yes/no): ", entry.Title))
			if answer != "yes" && answer != "y" {
				fmt.Println("Operation cancelled.")
				return nil
			}
		}

		em := db.DefaultEntryManager()
		if em == nil {
			return errors.New("no entry manager available")
		}
		if err := em.DeleteEntry(entry.ID); err != nil {
			return fmt.Errorf("%s", i18n.T("vault.cli_error_delete", err))
		}

		fmt.Println(i18n.T("vault.cli_deleted", entry.Title))
		return nil
	},
}

// registerVaultCommands registers all vault-related subcommands.
func registerVaultCommands() {
	// Register subcommands with the main vault command. NewRootCmd may run
	// multiple times in tests; the commands are package-level, so guard
	// against adding them twice.
	if !vaultListCmd.HasParent() {
		vaultCmd.AddCommand(vaultListCmd)
		vaultCmd.AddCommand(vaultShowCmd)
		vaultCmd.AddCommand(vaultAddCmd)
		vaultCmd.AddCommand(vaultUpdateCmd)
		vaultCmd.AddCommand(vaultDeleteCmd)
	}

	// The passphrase gate applies to every subcommand.
	if vaultCmd.PersistentFlags().Lookup("passphrase") == nil {
		vaultCmd.PersistentFlags().String("passphrase", "", "Profile passphrase (prompted when omitted)")
	}

	// Setup flags for add (only if not already defined)
	if vaultAddCmd.Flags().Lookup("title") == nil {
		vaultAddCmd.Flags().StringP("title", "t", "", "Entry title (prompts interactively when omitted)")
		vaultAddCmd.Flags().StringP("username", "u", "", "Username or account name")
		vaultAddCmd.Flags().StringP("password", "p", "", "Password (use --generate to create one)")
		vaultAddCmd.Flags().BoolP("generate", "g", false, "Generate the password with the configured settings")
		vaultAddCmd.Flags().String("url", "", "Associated URL")
		vaultAddCmd.Flags().String("notes", "", "Free-form notes")
		vaultAddCmd.Flags().StringP("category", "c", "", "Category for grouping and filtering")
	}

	// Setup flags for update (only if not already defined)
	if vaultUpdateCmd.Flags().Lookup("title") == nil {
		vaultUpdateCmd.Flags().String("title", "", "Update title")
		vaultUpdateCmd.Flags().String("username", "", "Update username")
		vaultUpdateCmd.Flags().String("password", "", "Update password")
		vaultUpdateCmd.Flags().BoolP("generate", "g", false, "Replace the password with a generated one")
		vaultUpdateCmd.Flags().String("url", "", "Update URL")
		vaultUpdateCmd.Flags().String("notes", "", "Update notes")
		vaultUpdateCmd.Flags().String("category", "", "Update category")
	}

	// Setup flags for show (only if not already defined)
	if vaultShowCmd.Flags().Lookup("show") == nil {
		vaultShowCmd.Flags().Bool("show", false, "Reveal the password in the output")
		vaultShowCmd.Flags().BoolP("copy", "c", false, "Copy the password to the clipboard")
	}

	// Setup flags for delete (only if not already defined)
	if vaultDeleteCmd.Flags().Lookup("force") == nil {
		vaultDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	}

	// Setup flags for list (only if not already defined)
	if vaultListCmd.Flags().Lookup("search") == nil {
		vaultListCmd.Flags().String("search", "", "Search by title, username, URL, or category")
		vaultListCmd.Flags().String("category", "", "Filter by category expression (supports & | ! and parentheses)")
	}
}
