// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// defaultBcryptCost balances unlock latency against offline guessing.
const defaultBcryptCost = 12

// bcryptCost returns the configured hashing cost. PASSKEEP_BCRYPT_COST
// overrides the default, clamped to bcrypt's sane range.
func bcryptCost() int {
	raw := os.Getenv("PASSKEEP_BCRYPT_COST")
	if raw == "" {
		return defaultBcryptCost
	}
	cost, err := strconv.Atoi(raw)
	if err != nil || cost < bcrypt.MinCost || cost > 16 {
		return defaultBcryptCost
	}
	return cost
}

// HashPassphrase derives a storable bcrypt hash from a profile passphrase.
func HashPassphrase(passphrase Secret) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passphrase.Bytes(), bcryptCost())
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hash), nil
}

// CheckPassphrase reports whether the passphrase matches the stored hash.
func CheckPassphrase(storedHash string, passphrase Secret) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(passphrase)) == nil
}
