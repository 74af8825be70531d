package prompt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/acd/engine"
	"github.com/ardnew/acd/log"
)

const defaultWidth = 80

// TUI prompts with an editable line on a terminal. Earlier answers for the
// same declaration are recalled with Up and Down, and Tab fills in the
// default.
type TUI struct {
	in      io.Reader
	out     io.Writer
	style   styles
	history *History
	logger  log.Logger
}

// NewTUI returns a TUI prompter reading keys from in and drawing on out.
func NewTUI(in io.Reader, out io.Writer, opts ...Option) *TUI {
	o := makeOptions(opts...)

	return &TUI{
		in:      in,
		out:     out,
		style:   newStyles(out),
		history: o.history,
		logger:  o.logger,
	}
}

// Prompt implements [engine.Prompter].
func (t *TUI) Prompt(ctx context.Context, req engine.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := newModel(req, t.history.Recall(req.Name), t.style)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out))

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	fm, _ := final.(model)
	if fm.err != nil {
		return "", fm.err
	}

	t.logger.TraceContext(ctx, "answer",
		slog.String("name", req.Name),
		slog.String("value", fm.answer))

	if err := t.history.Add(req.Name, fm.answer); err != nil {
		t.logger.DebugContext(ctx, "history not saved", slog.Any("error", err))
	}

	return fm.answer, nil
}

// model is the Bubble Tea model for one question.
type model struct {
	req        engine.Request
	input      textinput.Model
	style      styles
	recall     []string
	historyIdx int
	answer     string
	err        error
	done       bool
}

func newModel(req engine.Request, recall []string, style styles) model {
	ti := textinput.New()
	ti.Prompt = style.prompt.Render(req.Text) + ": "
	ti.Placeholder = req.Default
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		req:        req,
		input:      ti,
		style:      style,
		recall:     recall,
		historyIdx: len(recall),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.err = ErrCancelled
		m.done = true

		return m, tea.Quit

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.err = ErrEOF
			m.done = true

			return m, tea.Quit
		}

	case tea.KeyEnter:
		m.answer = m.input.Value()
		m.done = true

		return m, tea.Quit

	case tea.KeyTab:
		if m.req.Default != "" {
			m.input.SetValue(m.req.Default)
			m.input.CursorEnd()
		}

		return m, nil

	case tea.KeyUp:
		if m.historyIdx > 0 {
			m.historyIdx--
			m.input.SetValue(m.recall[m.historyIdx])
			m.input.CursorEnd()
		}

		return m, nil

	case tea.KeyDown:
		if m.historyIdx < len(m.recall) {
			m.historyIdx++
			if m.historyIdx == len(m.recall) {
				m.input.SetValue("")
			} else {
				m.input.SetValue(m.recall[m.historyIdx])
			}

			m.input.CursorEnd()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.done {
		if m.err != nil {
			return ""
		}

		return m.input.Prompt + m.answer + "\n"
	}

	var b strings.Builder

	if m.req.Attempt > 1 && m.req.Err != nil {
		b.WriteString(m.style.err.Render(
			fmt.Sprintf("  rejected %q: %v", m.req.Rejected, m.req.Err)))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < len(m.recall):
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			len(m.recall))
		b.WriteString(m.style.hint.Render(hint))

	case m.req.Help != "":
		b.WriteString(m.style.hint.Render(m.req.Help))

	case m.req.Default != "":
		b.WriteString(m.style.hint.Render("Enter accepts " + m.req.Default))
	}

	b.WriteString("\n")

	return b.String()
}
