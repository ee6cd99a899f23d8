// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package generator

import "strings"

// Fixed character classes. These are process-wide constants and are never
// mutated at runtime.
const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// ambiguousChars are glyphs that are easily misread for one another in most
// fonts. They are only ever stripped from the letter and digit classes;
// symbols pass through unfiltered.
const ambiguousChars = "Il1O0o"

// charClass is one enabled character class with its effective alphabet.
type charClass struct {
	name  string
	chars string
}

// stripAmbiguous removes the ambiguous glyphs from s.
func stripAmbiguous(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(ambiguousChars, s[i]) == -1 {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// buildClasses converts a Config into the ordered list of enabled classes.
// Order is fixed (uppercase, lowercase, numbers, symbols) so the
// require-all-types seeding in Generate is reproducible. When no class is
// enabled the lowercase class is returned as a fallback; generation must
// never operate on an empty alphabet.
func buildClasses(cfg Config) []charClass {
	filter := func(s string) string {
		if cfg.AvoidAmbiguous {
			return stripAmbiguous(s)
		}
		return s
	}

	var classes []charClass
	if cfg.Uppercase {
		classes = append(classes, charClass{name: "uppercase", chars: filter(uppercaseChars)})
	}
	if cfg.Lowercase {
		classes = append(classes, charClass{name: "lowercase", chars: filter(lowercaseChars)})
	}
	if cfg.Numbers {
		classes = append(classes, charClass{name: "numbers", chars: filter(numberChars)})
	}
	if cfg.Symbols {
		// Symbols are never ambiguity-filtered.
		classes = append(classes, charClass{name: "symbols", chars: symbolChars})
	}

	// Drop anything filtering emptied. With the fixed tables this cannot
	// happen, but the builder guarantees it regardless.
	kept := classes[:0]
	for _, c := range classes {
		if c.chars != "" {
			kept = append(kept, c)
		}
	}
	classes = kept

	if len(classes) == 0 {
		classes = append(classes, charClass{name: "lowercase", chars: filter(lowercaseChars)})
	}
	return classes
}
