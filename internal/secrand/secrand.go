// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package secrand supplies the unbiased random primitives used for password
// generation. Every piece of randomness in Passkeep flows through Int and
// Shuffle so the security property (an OS-backed CSPRNG, no statistical PRNG)
// stays auditable in one place.
package secrand

import (
	"crypto/rand"
	"encoding/binary"
)

// Int returns a uniform random integer in [0, n). It avoids modulo bias by
// drawing 32-bit values and rejecting any draw at or above the largest
// multiple of n that fits in 2^32. For n <= 0 it returns 0.
func Int(n int) int {
	if n <= 0 {
		return 0
	}
	// Largest multiple of n not exceeding 2^32. Draws above it would make the
	// low residues slightly more likely, so they are discarded.
	limit := (uint64(1) << 32) / uint64(n) * uint64(n)
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			// The platform CSPRNG is a hard requirement. There is no
			// meaningful degraded mode, so fail loudly.
			panic("secrand: reading from crypto/rand failed: " + err.Error())
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// Shuffle permutes s in place using a Fisher-Yates shuffle driven by Int.
func Shuffle[S ~[]E, E any](s S) {
	for i := len(s) - 1; i > 0; i-- {
		j := Int(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
