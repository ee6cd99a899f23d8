// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package generator produces passwords from a cryptographically secure random
// source under a declarative constraint set. Generate is a total function: it
// degrades (fallback alphabet, best-effort constraints, truncation) instead
// of returning errors, so callers that want strict input checking must run
// ValidateConfig themselves before generating.
package generator

import (
	"errors"

	"github.com/passkeep/passkeep/internal/secrand"
)

// Length bounds enforced by ValidateConfig. Generate itself accepts any
// length and clamps degenerate values.
const (
	MinLength = 8
	MaxLength = 128
)

// rejectionCap bounds the rejection-sampling loop for a single slot. When a
// configuration makes a constraint statistically rare (a two-character
// alphabet with NoConsecutiveRepeat, say), the slot is accepted as-is after
// this many rejected draws so generation always terminates.
const rejectionCap = 10000

var (
	ErrLengthTooShort     = errors.New("password length must be at least 8")
	ErrLengthTooLong      = errors.New("password length must be at most 128")
	ErrNoCharacterTypes   = errors.New("at least one character type must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
)

// Config describes one generation request. It is treated as immutable for
// the duration of a Generate call.
type Config struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool

	// AvoidAmbiguous strips easily confused glyphs (I, l, 1, O, 0, o) from
	// the letter and digit classes. Symbols are unaffected.
	AvoidAmbiguous bool
	// RequireAllTypes guarantees at least one character from every enabled
	// class, as long as Length leaves room for them.
	RequireAllTypes bool
	// NoConsecutiveRepeat forbids two identical adjacent characters.
	NoConsecutiveRepeat bool
	// NoSequential forbids three characters forming an ascending or
	// descending run of consecutive code points (abc, 321).
	NoSequential bool
}

// DefaultConfig returns the out-of-the-box generation profile: 16 characters
// drawing on all four classes, structural constraints off.
func DefaultConfig() Config {
	return Config{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// ValidateConfig checks cfg against the bounds the interactive surfaces
// enforce. It exists as a separate, explicitly bypassable step: Generate
// stays defined for every input and never reports these conditions itself.
func ValidateConfig(cfg Config) []error {
	var errs []error
	if cfg.Length < MinLength {
		errs = append(errs, ErrLengthTooShort)
	}
	if cfg.Length > MaxLength {
		errs = append(errs, ErrLengthTooLong)
	}
	enabled := 0
	for _, on := range []bool{cfg.Uppercase, cfg.Lowercase, cfg.Numbers, cfg.Symbols} {
		if on {
			enabled++
		}
	}
	if enabled == 0 {
		errs = append(errs, ErrNoCharacterTypes)
	}
	if cfg.RequireAllTypes && enabled > 0 && cfg.Length < enabled {
		errs = append(errs, ErrLengthInsufficient)
	}
	return errs
}

// Generate produces a password of cfg.Length characters drawn from the
// enabled classes. With RequireAllTypes set the result is seeded with one
// uniform character per enabled class before the remaining slots are filled
// from the combined alphabet; the whole result is then shuffled so the
// seeded characters are not predictably placed. Structural constraints are
// enforced by per-slot rejection sampling, bounded by rejectionCap.
//
// Generate never fails. A config with no enabled classes falls back to
// lowercase, and a length shorter than the number of enabled classes is
// honored by truncation (losing the all-types guarantee).
func Generate(cfg Config) string {
	if cfg.Length <= 0 {
		return ""
	}

	classes := buildClasses(cfg)
	var combined string
	for _, c := range classes {
		combined += c.chars
	}

	out := make([]byte, 0, cfg.Length+len(classes))
	if cfg.RequireAllTypes {
		for _, c := range classes {
			out = append(out, c.chars[secrand.Int(len(c.chars))])
		}
	}

	for len(out) < cfg.Length {
		out = append(out, nextChar(cfg, combined, out))
	}

	secrand.Shuffle(out)
	if len(out) > cfg.Length {
		out = out[:cfg.Length]
	}
	return string(out)
}

// nextChar draws a candidate for the next slot, rejecting candidates that
// violate the adjacency constraints until one is accepted or the rejection
// cap is hit.
func nextChar(cfg Config, combined string, prev []byte) byte {
	for attempt := 0; ; attempt++ {
		ch := combined[secrand.Int(len(combined))]
		if attempt >= rejectionCap {
			// Constraint relaxed for this slot only; accept as-is.
			return ch
		}
		if cfg.NoConsecutiveRepeat && len(prev) >= 1 && ch == prev[len(prev)-1] {
			continue
		}
		if cfg.NoSequential && len(prev) >= 2 && isRunOfThree(prev[len(prev)-2], prev[len(prev)-1], ch) {
			continue
		}
		return ch
	}
}

// isRunOfThree reports whether a, b, c are consecutive code points in either
// direction.
func isRunOfThree(a, b, c byte) bool {
	if b == a+1 && c == b+1 {
		return true
	}
	if a >= 1 && b == a-1 && b >= 1 && c == b-1 {
		return true
	}
	return false
}
