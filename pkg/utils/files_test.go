package utils

import (
	"path/filepath"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"main.sl", "main.json"},
		{"src/lib/util.sl", "src/lib/util.json"},
		{"noext", "noext.json"},
		{"dir.v2/file", "dir.v2/file.json"},
		{"a.b.sl", "a.b.json"},
	}
	for _, tc := range tests {
		if got := DefaultOutputPath(tc.in); got != tc.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHasExtension(t *testing.T) {
	if !HasExtension("x/main.sl", ".sl") || !HasExtension("MAIN.SL", ".sl") {
		t.Error("Expected .sl files to match")
	}
	if HasExtension("main.json", ".sl") || HasExtension("sl", ".sl") {
		t.Error("Expected non-.sl files not to match")
	}
}

func TestGetPathInfo(t *testing.T) {
	full, parent, err := GetPathInfo("a/../b/c.sl")
	if err != nil {
		t.Fatalf("GetPathInfo failed: %v", err)
	}
	if !filepath.IsAbs(full) || filepath.Base(full) != "c.sl" {
		t.Errorf("fullPath = %q", full)
	}
	if filepath.Base(parent) != "b" {
		t.Errorf("parentDir = %q, want it to end in b", parent)
	}
}
