package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveInlineValue(t *testing.T) {
	got, err := Resolve("api key", "  secret-value \n", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "secret-value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestResolveFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	got, err := Resolve("api key", "inline", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve("api key", "", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveEmpty(t *testing.T) {
	if _, err := Resolve("api key", "   ", ""); err == nil {
		t.Fatal("expected error for empty value")
	}
}
