package universe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write symbols: %v", err)
	}
	return path
}

func TestFileProviderLoadsInOrder(t *testing.T) {
	path := writeFile(t, "# penny names\nsndl\n\nMULN\n  gme  \nSNDL\n")
	got := NewFileProvider(path, zerolog.Nop()).Load(context.Background())
	want := []string{"SNDL", "MULN", "GME"}
	if len(got) != len(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v got %v", want, got)
		}
	}
}

func TestFileProviderFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	got := NewFileProvider(missing, zerolog.Nop()).Load(context.Background())
	if len(got) != len(Fallback) || got[0] != "AAPL" {
		t.Fatalf("expected fallback universe, got %v", got)
	}

	empty := writeFile(t, "# nothing here\n\n")
	got = NewFileProvider(empty, zerolog.Nop()).Load(context.Background())
	if len(got) != len(Fallback) {
		t.Fatalf("expected fallback for empty file, got %v", got)
	}

	got[0] = "MUTATED"
	if Fallback[0] != "AAPL" {
		t.Fatal("fallback list must not be shared with callers")
	}
}

func TestStatic(t *testing.T) {
	got := Static{"abc", "ABC", "def"}.Load(context.Background())
	if len(got) != 2 || got[0] != "ABC" || got[1] != "DEF" {
		t.Fatalf("unexpected static universe %v", got)
	}
	if got := (Static{}).Load(context.Background()); len(got) != len(Fallback) {
		t.Fatalf("expected fallback for empty static universe, got %v", got)
	}
}
