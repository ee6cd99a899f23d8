// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import "github.com/passkeep/passkeep/internal/generator"

// Config is the root configuration object persisted to passkeep.yaml.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Language  string          `mapstructure:"language" yaml:"language"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// GeneratorConfig stores the user's preferred generation settings so the
// TUI and `passkeep generate` start from the same place.
type GeneratorConfig struct {
	Length              int  `mapstructure:"length" yaml:"length"`
	Uppercase           bool `mapstructure:"uppercase" yaml:"uppercase"`
	Lowercase           bool `mapstructure:"lowercase" yaml:"lowercase"`
	Numbers             bool `mapstructure:"numbers" yaml:"numbers"`
	Symbols             bool `mapstructure:"symbols" yaml:"symbols"`
	AvoidAmbiguous      bool `mapstructure:"avoid_ambiguous" yaml:"avoid_ambiguous"`
	RequireAllTypes     bool `mapstructure:"require_all_types" yaml:"require_all_types"`
	NoConsecutiveRepeat bool `mapstructure:"no_consecutive_repeat" yaml:"no_consecutive_repeat"`
	NoSequential        bool `mapstructure:"no_sequential" yaml:"no_sequential"`
}

// CoreConfig converts the persisted settings into a generator configuration.
func (g GeneratorConfig) CoreConfig() generator.Config {
	return generator.Config{
		Length:              g.Length,
		Uppercase:           g.Uppercase,
		Lowercase:           g.Lowercase,
		Numbers:             g.Numbers,
		Symbols:             g.Symbols,
		AvoidAmbiguous:      g.AvoidAmbiguous,
		RequireAllTypes:     g.RequireAllTypes,
		NoConsecutiveRepeat: g.NoConsecutiveRepeat,
		NoSequential:        g.NoSequential,
	}
}
