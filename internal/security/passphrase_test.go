// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
package security

import "testing"

func TestHashAndCheckPassphrase(t *testing.T) {
	t.Setenv("PASSKEEP_BCRYPT_COST", "4") // keep the test fast

	hash, err := HashPassphrase(FromString("correct horse"))
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	if hash == "" || hash == "correct horse" {
		t.Fatalf("hash looks wrong: %q", hash)
	}
	if !CheckPassphrase(hash, FromString("correct horse")) {
		t.Fatalf("correct passphrase rejected")
	}
	if CheckPassphrase(hash, FromString("wrong horse")) {
		t.Fatalf("wrong passphrase accepted")
	}
}

func TestCheckPassphraseGarbageHash(t *testing.T) {
	if CheckPassphrase("not-a-bcrypt-hash", FromString("anything")) {
		t.Fatalf("garbage hash accepted")
	}
	if CheckPassphrase("", FromString("anything")) {
		t.Fatalf("empty hash accepted")
	}
}

func TestBcryptCostOverride(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"unset", "", defaultBcryptCost},
		{"valid", "10", 10},
		{"minimum", "4", 4},
		{"too high", "31", defaultBcryptCost},
		{"not a number", "abc", defaultBcryptCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PASSKEEP_BCRYPT_COST", tt.env)
			if got := bcryptCost(); got != tt.want {
				t.Errorf("bcryptCost() = %d, want %d", got, tt.want)
			}
		})
	}
}
