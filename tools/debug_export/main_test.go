// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureOutput runs fn with stdout and stderr redirected into a buffer.
// Stderr is included because charm log writes there.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	oldOut, oldErr := os.Stdout, os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	os.Stdout, os.Stderr = w, w
	t.Cleanup(func() {
		os.Stdout, os.Stderr = oldOut, oldErr
	})

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout, os.Stderr = oldOut, oldErr
	return <-done
}

// TestMainRuns seeds the in-memory store and checks the probe's summary
// lines come out. main must not call os.Exit for this to work.
func TestMainRuns(t *testing.T) {
	out := captureOutput(t, main)

	if out == "" {
		t.Fatalf("expected main to print output, got empty string")
	}
	for _, want := range []string{"work entries: 2", "all entries: 3", "title=Email"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}
