// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package strength scores passwords with an entropy-based model.
//
// Reported bits are per-character Shannon entropy scaled by password
// length. That is an approximation, not a keyspace measure, but the
// score thresholds are calibrated against exactly this formula.
package strength

import (
	"math"
	"unicode"
)

// Label is the coarse strength tier derived from a score.
type Label int

const (
	// Weak covers scores 0-3.
	Weak Label = iota
	// Fair covers scores 4-5.
	Fair
	// Good covers scores 6-7.
	Good
	// Strong covers scores 8-9.
	Strong
	// Excellent is a perfect 10.
	Excellent
)

// String returns the English tier name.
func (l Label) String() string {
	switch l {
	case Fair:
		return "Fair"
	case Good:
		return "Good"
	case Strong:
		return "Strong"
	case Excellent:
		return "Excellent"
	default:
		return "Weak"
	}
}

// Result is the analyzer's verdict on a single password.
type Result struct {
	// Bits is the entropy estimate rounded to one decimal.
	Bits float64
	// Score is the additive 0-10 composite.
	Score int
	// Label classifies Score.
	Label Label
}

// Analyze scores a password. It inspects only the string it is given,
// never the configuration that produced it, so pasted or user-typed
// input is scored the same way as generated output. The empty string
// yields a zero-valued result rather than an error.
func Analyze(password string) Result {
	runes := []rune(password)
	n := len(runes)
	if n == 0 {
		return Result{Label: Weak}
	}

	freq := make(map[rune]int, n)
	for _, r := range runes {
		freq[r]++
	}
	var perChar float64
	for _, count := range freq {
		p := float64(count) / float64(n)
		perChar -= p * math.Log2(p)
	}
	bits := math.Round(perChar*float64(n)*10) / 10

	score := 0
	for _, threshold := range []int{8, 12, 16, 20} {
		if n >= threshold {
			score++
		}
	}

	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasOther = true
		}
	}
	for _, present := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if present {
			score++
		}
	}

	if bits >= 50 {
		score++
	}
	if bits >= 80 {
		score++
	}

	return Result{Bits: bits, Score: score, Label: labelFor(score)}
}

func labelFor(score int) Label {
	switch {
	case score <= 3:
		return Weak
	case score <= 5:
		return Fair
	case score <= 7:
		return Good
	case score <= 9:
		return Strong
	default:
		return Excellent
	}
}
