// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package secrand

import (
	"sort"
	"testing"
)

func TestIntBounds(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 10, 26, 95, 256, 1000} {
		for i := 0; i < 200; i++ {
			got := Int(n)
			if got < 0 || got >= n {
				t.Fatalf("Int(%d) = %d, out of range [0, %d)", n, got, n)
			}
		}
	}
}

func TestIntDegenerate(t *testing.T) {
	if got := Int(0); got != 0 {
		t.Errorf("Int(0) = %d, want 0", got)
	}
	if got := Int(-5); got != 0 {
		t.Errorf("Int(-5) = %d, want 0", got)
	}
	if got := Int(1); got != 0 {
		t.Errorf("Int(1) = %d, want 0", got)
	}
}

func TestIntCoversRange(t *testing.T) {
	// With 2000 draws over 10 values, missing a value is astronomically
	// unlikely unless the sampler is broken.
	const n = 10
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		seen[Int(n)] = true
	}
	if len(seen) != n {
		t.Fatalf("expected all %d values to appear, saw %d", n, len(seen))
	}
}

func TestShufflePreservesElements(t *testing.T) {
	orig := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	s := make([]byte, len(orig))
	copy(s, orig)

	Shuffle(s)

	if len(s) != len(orig) {
		t.Fatalf("shuffle changed length: got %d, want %d", len(s), len(orig))
	}
	a := append([]byte(nil), orig...)
	b := append([]byte(nil), s...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	if string(a) != string(b) {
		t.Fatalf("shuffle changed the multiset of elements: %q vs %q", a, b)
	}
}

func TestShuffleActuallyPermutes(t *testing.T) {
	// A 36-element slice staying in order across 20 shuffles means the
	// shuffle is a no-op.
	orig := "abcdefghijklmnopqrstuvwxyz0123456789"
	moved := false
	for i := 0; i < 20; i++ {
		s := []byte(orig)
		Shuffle(s)
		if string(s) != orig {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("shuffle never changed element order across 20 attempts")
	}
}

func TestShuffleShortSlices(t *testing.T) {
	Shuffle([]int(nil))
	Shuffle([]int{})
	one := []int{42}
	Shuffle(one)
	if one[0] != 42 {
		t.Fatalf("single-element shuffle altered contents: %v", one)
	}
}
