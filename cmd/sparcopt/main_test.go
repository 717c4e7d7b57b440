package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestRunWithNoArgsPrintsUsageAndFails(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("got exit code %d, want 1", code)
	}
}

func TestRunWithTooManyArgsFails(t *testing.T) {
	if code := run([]string{"a.s", "b.s"}); code != 1 {
		t.Fatalf("got exit code %d, want 1", code)
	}
}

func TestRunWithMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	if code := run([]string{filepath.Join(dir, "nope.s")}); code != 1 {
		t.Fatalf("got exit code %d, want 1", code)
	}
}

func TestRunOptimizesAndExitsZero(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "prog.s", "mov 1, %l0\nnop\nmov 2, %l1\n")

	if code := run([]string{path}); code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
}

func TestRunReportsParseErrorAndExitsOne(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "bad.s", "frobnicate %l0, %l1\n")

	if code := run([]string{path}); code != 1 {
		t.Fatalf("got exit code %d, want 1", code)
	}
}

func TestRunHonorsSidecarConfig(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, ".sparcoptrc", "[printer]\nblank_line_before_labels = false\noperand_separator = \", \"\n")
	path := writeTemp(t, dir, "prog.s", "label1:\nmov 1, %l0\nnop\n")

	if code := run([]string{path}); code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
}
