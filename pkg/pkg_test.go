package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "acd" {
		t.Errorf("Expected Name to be %q, got %q", "acd", Name)
	}

	if EnvPrefix() != "ACD_" {
		t.Errorf("Expected EnvPrefix to be %q, got %q", "ACD_", EnvPrefix())
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("Expected embedded version to be non-empty")
	}

	if strings.ContainsAny(Version(), " \n") {
		t.Errorf("Expected trimmed version, got %q", Version())
	}
}

func TestAuthor(t *testing.T) {
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestProgramName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/seqret", "seqret"},
		{"water.acd", "water"},
		{"/tmp/__debug_bin123", Name},
		{".hidden", "hidden"},
		{"/etc/.prog.acd", "prog"},
		{"dir/needle.exe", "needle"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ProgramName(tt.path); got != tt.want {
				t.Errorf("ProgramName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestError_Format(t *testing.T) {
	errBase := NewError("bad thing")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message only", errBase, "bad thing"},
		{
			"with position",
			errBase.At(Position{File: "a.acd", Line: 3}),
			"a.acd 3: bad thing",
		},
		{
			"with cause",
			errBase.Wrap(errors.New("boom")),
			"bad thing: boom",
		},
		{
			"with attrs",
			errBase.With(slog.String("name", "x"), slog.Any("candidates", []string{"a", "b"})),
			"bad thing [name=x candidates=[a b]]",
		},
		{
			"line only",
			errBase.At(Position{Line: 7}),
			"line 7: bad thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	errA := NewError("a")
	errB := NewError("b")

	derived := errA.With(slog.Int("n", 1)).At(Position{Line: 2}).Wrap(errB)

	if !errors.Is(derived, errA) {
		t.Error("derived error should match its sentinel")
	}

	if !errors.Is(derived, errB) {
		t.Error("derived error should match its wrapped cause")
	}

	if errors.Is(errA, errB) {
		t.Error("distinct sentinels must not match")
	}

	wrapped := fmt.Errorf("context: %w", derived)
	if got := WrapError(wrapped); got != derived {
		t.Error("WrapError should recover the inner *Error")
	}
}

func TestError_AtKeepsFirstPosition(t *testing.T) {
	e := NewError("x").At(Position{File: "f", Line: 1}).At(Position{File: "g", Line: 9})
	if e.Position().File != "f" || e.Position().Line != 1 {
		t.Errorf("At should not overwrite an existing position, got %v", e.Position())
	}
}
