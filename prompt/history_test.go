package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"window", "10"},
		{"seq", "a.fa"},
		{"window", "12"},
		{"window", "10"},
		{"window", "10"},
		{"seq", "   "},
	} {
		if err := h.Add(e.Name, e.Value); err != nil {
			t.Fatalf("Add(%q, %q): %v", e.Name, e.Value, err)
		}
	}

	want := []string{"12", "10"}
	if got := h.Recall("window"); !slices.Equal(got, want) {
		t.Errorf("Recall() = %q, want %q", got, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := loaded.Recall("WINDOW"); !slices.Equal(got, want) {
		t.Errorf("loaded Recall() = %q, want %q", got, want)
	}

	if loaded.Len() != 3 {
		t.Errorf("Len() = %d, want 3", loaded.Len())
	}

	e, err := loaded.Entry(2)
	if err != nil || e != (HistoryEntry{"window", "10"}) {
		t.Errorf("Entry(2) = %v, %v", e, err)
	}

	if _, err := loaded.Entry(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(3) error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestHistory_SkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseHistory)

	data := "window\t10\nnotab\n\tnoname\nseq\t\nseq\tb.fa\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestHistory_Nil(t *testing.T) {
	var h *History

	if err := h.Add("a", "b"); err != nil {
		t.Errorf("Add() = %v", err)
	}

	if h.Recall("a") != nil || h.Len() != 0 {
		t.Error("nil history is not empty")
	}
}
