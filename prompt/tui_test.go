package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/acd/engine"
)

func testModel(recall ...string) model {
	req := engine.Request{Name: "window", Text: "Window size", Default: "10", Attempt: 1}

	return newModel(req, recall, newStyles(&bytes.Buffer{}))
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}

	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Keys(t *testing.T) {
	tests := []struct {
		name    string
		recall  []string
		keys    []tea.KeyMsg
		want    string
		wantErr error
	}{
		{
			name: "typed",
			keys: []tea.KeyMsg{runes("12"), {Type: tea.KeyEnter}},
			want: "12",
		},
		{
			name: "empty accepts default later",
			keys: []tea.KeyMsg{{Type: tea.KeyEnter}},
			want: "",
		},
		{
			name: "tab fills default",
			keys: []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}},
			want: "10",
		},
		{
			name:   "up recalls latest",
			recall: []string{"4", "8"},
			keys:   []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}},
			want:   "8",
		},
		{
			name:   "up up down",
			recall: []string{"4", "8"},
			keys: []tea.KeyMsg{
				{Type: tea.KeyUp}, {Type: tea.KeyUp}, {Type: tea.KeyUp},
				{Type: tea.KeyDown}, {Type: tea.KeyEnter},
			},
			want: "8",
		},
		{
			name:   "down past end clears",
			recall: []string{"4"},
			keys:   []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			want:   "",
		},
		{
			name:    "ctrl-c",
			keys:    []tea.KeyMsg{runes("1"), {Type: tea.KeyCtrlC}},
			wantErr: ErrCancelled,
		},
		{
			name:    "esc",
			keys:    []tea.KeyMsg{{Type: tea.KeyEsc}},
			wantErr: ErrCancelled,
		},
		{
			name:    "ctrl-d on empty line",
			keys:    []tea.KeyMsg{{Type: tea.KeyCtrlD}},
			wantErr: ErrEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(testModel(tt.recall...), tt.keys...)

			if !m.done {
				t.Fatal("model not done")
			}

			if !errors.Is(m.err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", m.err, tt.wantErr)
			}

			if m.answer != tt.want {
				t.Errorf("answer = %q, want %q", m.answer, tt.want)
			}
		})
	}
}

func TestModel_View(t *testing.T) {
	m := testModel("4")

	if v := m.View(); !strings.Contains(v, "Enter accepts 10") {
		t.Errorf("View() = %q, want default hint", v)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if v := m.View(); !strings.Contains(v, "/1") {
		t.Errorf("View() = %q, want history position", v)
	}

	m.req.Attempt = 2
	m.req.Rejected = "x"
	m.req.Err = errors.New("bad")

	if v := m.View(); !strings.Contains(v, `rejected "x"`) {
		t.Errorf("View() = %q, want rejection", v)
	}
}
