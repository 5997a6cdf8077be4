package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnalyzeMissingInputFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.pptx"), filepath.Join(t.TempDir(), "out.txt")})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestAnalyzeMissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	// The input exists but is not even a zip; the credential check must
	// fire before the deck is ever opened.
	input := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(input, []byte("not a deck"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{input, filepath.Join(t.TempDir(), "out.txt")})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	if !strings.Contains(err.Error(), "api_key") {
		t.Errorf("error = %v, want the credential error, not a deck error", err)
	}
}

func TestWatchRequiresDirectories(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"watch"})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("expected an error when watch directories are not configured")
	}
	if !strings.Contains(err.Error(), "paths.input") {
		t.Errorf("error = %v, want the missing input-dir error", err)
	}
}
