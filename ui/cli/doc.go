// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Passkeep using Cobra.
// It wires configuration, i18n, and the database, and provides commands that
// delegate to the generator, strength, and db packages. CLI code should
// remain thin; business logic lives in the internal packages.
package cli
