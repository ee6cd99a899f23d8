// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package strength

import (
	"math"
	"strconv"
)

// guessesPerSecond models a well-funded offline attacker.
const guessesPerSecond = 1e10

// Unit is the display unit for a cracking-time estimate.
type Unit int

const (
	UnitInstant Unit = iota
	UnitSeconds
	UnitMinutes
	UnitHours
	UnitDays
	UnitMonths
	UnitYears
	UnitCenturies
)

// String returns the plural English unit name.
func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMinutes:
		return "minutes"
	case UnitHours:
		return "hours"
	case UnitDays:
		return "days"
	case UnitMonths:
		return "months"
	case UnitYears:
		return "years"
	case UnitCenturies:
		return "centuries"
	default:
		return "instant"
	}
}

func (u Unit) singular() string {
	switch u {
	case UnitSeconds:
		return "second"
	case UnitMinutes:
		return "minute"
	case UnitHours:
		return "hour"
	case UnitDays:
		return "day"
	case UnitMonths:
		return "month"
	case UnitYears:
		return "year"
	case UnitCenturies:
		return "century"
	default:
		return "instant"
	}
}

// CrackTime is a coarse duration estimate, bucketed into the largest
// unit with a whole count of at least one.
type CrackTime struct {
	// Seconds is the raw estimate.
	Seconds float64
	// Value is the whole count of Unit, zero when instant.
	Value float64
	// Unit is the chosen display unit.
	Unit Unit
}

// crackUnits is ordered largest first; months are a flat 30 days and
// centuries a flat 100 years, matching the advisory nature of the number.
var crackUnits = []struct {
	unit    Unit
	seconds float64
}{
	{UnitCenturies, 100 * 365 * 24 * 3600},
	{UnitYears, 365 * 24 * 3600},
	{UnitMonths, 30 * 24 * 3600},
	{UnitDays, 24 * 3600},
	{UnitHours, 3600},
	{UnitMinutes, 60},
	{UnitSeconds, 1},
}

// EstimateCrackTime converts entropy bits into an offline attack
// duration, assuming guessesPerSecond and an average-case search of
// half the keyspace. Display only; it never feeds back into scoring.
func EstimateCrackTime(bits float64) CrackTime {
	seconds := math.Pow(2, bits) / (2 * guessesPerSecond)
	for _, u := range crackUnits {
		if count := math.Floor(seconds / u.seconds); count >= 1 {
			return CrackTime{Seconds: seconds, Value: count, Unit: u.unit}
		}
	}
	return CrackTime{Seconds: seconds, Unit: UnitInstant}
}

// String renders the estimate in English, e.g. "3 days" or "instant".
func (ct CrackTime) String() string {
	if ct.Unit == UnitInstant {
		return "instant"
	}
	name := ct.Unit.String()
	if ct.Value == 1 {
		name = ct.Unit.singular()
	}
	return formatUnitCount(ct.Value) + " " + name
}

// formatUnitCount keeps astronomically large estimates readable.
func formatUnitCount(v float64) string {
	if v < 1e6 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}
