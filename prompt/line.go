package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/acd/engine"
	"github.com/ardnew/acd/log"
)

// Line prompts on one line and reads the answer up to the next newline.
type Line struct {
	r       *bufio.Reader
	w       io.Writer
	style   styles
	history *History
	logger  log.Logger
}

// NewLine returns a Line prompter reading r and writing w.
func NewLine(r io.Reader, w io.Writer, opts ...Option) *Line {
	o := makeOptions(opts...)

	return &Line{
		r:       bufio.NewReader(r),
		w:       w,
		style:   newStyles(w),
		history: o.history,
		logger:  o.logger,
	}
}

// Prompt implements [engine.Prompter]. The previous rejection, if any, is
// shown before the question.
func (l *Line) Prompt(ctx context.Context, req engine.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if req.Attempt > 1 && req.Err != nil {
		fmt.Fprintln(l.w, l.style.err.Render(
			fmt.Sprintf("  rejected %q: %v", req.Rejected, req.Err)))
	}

	var sb strings.Builder

	sb.WriteString(l.style.prompt.Render(req.Text))

	if req.Default != "" {
		sb.WriteString(" " + l.style.def.Render("["+req.Default+"]"))
	}

	sb.WriteString(": ")

	if _, err := io.WriteString(l.w, sb.String()); err != nil {
		return "", err
	}

	answer, err := l.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(l.w)

		return "", ErrEOF
	}

	answer = strings.TrimRight(answer, "\r\n")

	l.logger.TraceContext(ctx, "answer", slog.String("name", req.Name), slog.String("value", answer))

	if err := l.history.Add(req.Name, answer); err != nil {
		l.logger.DebugContext(ctx, "history not saved", slog.Any("error", err))
	}

	return answer, nil
}
