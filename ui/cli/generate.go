// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/passkeep/passkeep/internal/generator"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/strength"
	"github.com/passkeep/passkeep/internal/tui"
)

// generateCmd produces one or more passwords from the configured character
// classes and constraints, then reports strength and crack time.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one or more random passwords",
	Long: `Generates cryptographically secure random passwords.

Character classes and constraints default to the values from passkeep.yaml
(or the built-in defaults when no generator section is configured) and can
be overridden per run with flags.

Examples:
  # One password with the configured settings
  passkeep generate

  # A 32-character password without symbols, copied to the clipboard
  passkeep generate --length 32 --symbols=false --copy

  # Five PIN-style codes
  passkeep generate -n 5 --length 6 --uppercase=false --lowercase=false --symbols=false`,
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := generatorConfigFromFlags(cmd)
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			count = 1
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		copyFlag, _ := cmd.Flags().GetBool("copy")

		var last string
		for i := 0; i < count; i++ {
			password := generator.Generate(cfg)
			last = password
			fmt.Println(password)
			if quiet {
				continue
			}
			result := strength.Analyze(password)
			crack := strength.EstimateCrackTime(result.Bits)
			fmt.Println(i18n.T("generate.cli_strength", tui.LocalizedStrengthLabel(result.Label), result.Score, result.Bits))
			fmt.Println(i18n.T("generate.cli_crack", tui.LocalizedCrackTime(crack)))
		}

		if copyFlag {
			if err := clipboard.WriteAll(last); err != nil {
				return fmt.Errorf("could not copy to clipboard: %w", err)
			}
			fmt.Println(i18n.T("generate.cli_copied"))
		}

		return nil
	},
}

// configuredGeneratorConfig returns the user's persisted generator settings,
// falling back to the built-in defaults when no generator section exists or
// the persisted values fail validation.
func configuredGeneratorConfig() generator.Config {
	cfg := generator.DefaultConfig()
	if viper.IsSet("generator.length") {
		cfg = appConfig.Generator.CoreConfig()
		if errs := generator.ValidateConfig(cfg); len(errs) > 0 {
			return generator.DefaultConfig()
		}
	}
	return cfg
}

// generatorConfigFromFlags merges the persisted generator settings with any
// flags the user set on this invocation, then validates the result.
func generatorConfigFromFlags(cmd *cobra.Command) (generator.Config, error) {
	cfg := configuredGeneratorConfig()

	// Flags win over everything else.
	flagBools := map[string]*bool{
		"uppercase":       &cfg.Uppercase,
		"lowercase":       &cfg.Lowercase,
		"numbers":         &cfg.Numbers,
		"symbols":         &cfg.Symbols,
		"avoid-ambiguous": &cfg.AvoidAmbiguous,
		"require-all":     &cfg.RequireAllTypes,
		"no-repeat":       &cfg.NoConsecutiveRepeat,
		"no-sequential":   &cfg.NoSequential,
	}
	for name, target := range flagBools {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetBool(name)
			*target = v
		}
	}
	if cmd.Flags().Changed("length") {
		cfg.Length, _ = cmd.Flags().GetInt("length")
	}

	if errs := generator.ValidateConfig(cfg); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return cfg, fmt.Errorf("invalid generator settings: %s", strings.Join(msgs, "; "))
	}

	return cfg, nil
}

// registerGenerateFlags sets up flags for the generate command (only if not
// already defined).
func registerGenerateFlags() {
	if generateCmd.Flags().Lookup("length") == nil {
		generateCmd.Flags().IntP("length", "l", generator.DefaultConfig().Length, "Password length")
		generateCmd.Flags().Bool("uppercase", true, "Include uppercase letters")
		generateCmd.Flags().Bool("lowercase", true, "Include lowercase letters")
		generateCmd.Flags().Bool("numbers", true, "Include digits")
		generateCmd.Flags().Bool("symbols", true, "Include symbols")
		generateCmd.Flags().Bool("avoid-ambiguous", false, "Exclude look-alike characters (I, l, 1, O, 0, o)")
		generateCmd.Flags().Bool("require-all", false, "Require at least one character from every enabled class")
		generateCmd.Flags().Bool("no-repeat", false, "Forbid the same character twice in a row")
		generateCmd.Flags().Bool("no-sequential", false, "Forbid runs like abc or 123")
		generateCmd.Flags().IntP("count", "n", 1, "Number of passwords to generate")
		generateCmd.Flags().BoolP("copy", "c", false, "Copy the (last) password to the clipboard")
		generateCmd.Flags().BoolP("quiet", "q", false, "Print passwords only, no strength report")
	}
}
