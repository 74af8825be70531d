package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// palette wraps strings in ANSI color codes when the output supports them.
type palette bool

// makePalette enables colors only when w is a terminal with a color profile
// and NO_COLOR is unset.
func makePalette(w io.Writer) palette {
	return palette(termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii)
}

func (p palette) paint(buf *bytes.Buffer, color, s string) {
	if p {
		buf.WriteString(color)
	}

	buf.WriteString(s)

	if p {
		buf.WriteString(colorReset)
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// prettyTextHandler implements a colorized text handler for log messages.
// Records render as "LEVEL message key=value ...", the shape of a diagnostic
// written by a command-line tool.
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	color      palette
	mu         *sync.Mutex
	w          io.Writer
	groups     []string
	attrs      []slog.Attr
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		color:      makePalette(w),
		mu:         &sync.Mutex{},
		w:          w,
		groups:     []string{},
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			h.color.paint(buf, colorGray, ts)
			buf.WriteByte(' ')
		}
	}

	h.color.paint(buf, levelColor(r.Level),
		fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String())))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteByte(' ')
			h.color.paint(buf, colorGray, fmt.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")

	for _, a := range h.attrs {
		h.writeAttr(buf, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h

	prefix := strings.Join(h.groups, ".")
	c.attrs = slices.Clone(h.attrs)

	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}

		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			h.writeAttr(buf, key, g)
		}

		return
	}

	buf.WriteByte(' ')
	h.color.paint(buf, colorGray, key)
	buf.WriteByte('=')
	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		h.color.paint(buf, colorCyan, s)

	case slog.KindInt64:
		h.color.paint(buf, colorYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		h.color.paint(buf, colorYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		h.color.paint(buf, colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			h.color.paint(buf, colorGreen, "true")
		} else {
			h.color.paint(buf, colorRed, "false")
		}

	case slog.KindDuration:
		h.color.paint(buf, colorMagenta, v.Duration().String())

	case slog.KindTime:
		h.color.paint(buf, colorBlue, v.Time().String())

	default:
		if ss, ok := v.Any().([]string); ok {
			h.color.paint(buf, colorCyan, "["+strings.Join(ss, " ")+"]")

			return
		}

		h.color.paint(buf, colorCyan, v.String())
	}
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	color      palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:       *opts,
		formatTime: formatTime,
		color:      makePalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	first := true

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			h.writeJSONField(buf, slog.TimeKey, ts, &first)
		}
	}

	h.writeJSONField(buf, slog.LevelKey,
		strings.ToUpper(Level(r.Level).String()), &first)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeJSONField(buf, slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line), &first)
		}
	}

	h.writeJSONField(buf, slog.MessageKey, r.Message, &first)

	for _, a := range h.attrs {
		h.writeJSONField(buf, a.Key, a.Value.Resolve().Any(), &first)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeJSONField(buf, a.Key, a.Value.Resolve().Any(), &first)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(slices.Clone(h.attrs), attrs...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	c := *h

	return &c
}

func (h *prettyJSONHandler) writeJSONField(
	buf *bytes.Buffer,
	key string,
	value any,
	first *bool,
) {
	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString("  ")
	h.color.paint(buf, colorGray, strconv.Quote(key))
	buf.WriteString(": ")

	h.writeJSONValue(buf, value)
}

func (h *prettyJSONHandler) writeJSONValue(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		h.color.paint(buf, colorCyan, strconv.Quote(val))

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		h.color.paint(buf, colorYellow, fmt.Sprint(val))

	case bool:
		if val {
			h.color.paint(buf, colorGreen, "true")
		} else {
			h.color.paint(buf, colorRed, "false")
		}

	case nil:
		h.color.paint(buf, colorGray, "null")

	case []slog.Attr:
		buf.WriteByte('{')

		for i, a := range val {
			if i > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(strconv.Quote(a.Key))
			buf.WriteString(": ")
			h.writeJSONValue(buf, a.Value.Resolve().Any())
		}

		buf.WriteByte('}')

	case []string:
		buf.WriteByte('[')

		for i, s := range val {
			if i > 0 {
				buf.WriteString(", ")
			}

			h.color.paint(buf, colorCyan, strconv.Quote(s))
		}

		buf.WriteByte(']')

	default:
		h.color.paint(buf, colorCyan, strconv.Quote(fmt.Sprint(val)))
	}
}

// muteHandler drops records whose level is exactly one of the muted levels.
type muteHandler struct {
	slog.Handler
	muted []Level
}

func (h *muteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if slices.Contains(h.muted, Level(level)) {
		return false
	}

	return h.Handler.Enabled(ctx, level)
}

func (h *muteHandler) Handle(ctx context.Context, r slog.Record) error {
	if slices.Contains(h.muted, Level(r.Level)) {
		return nil
	}

	return h.Handler.Handle(ctx, r)
}

func (h *muteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &muteHandler{Handler: h.Handler.WithAttrs(attrs), muted: h.muted}
}

func (h *muteHandler) WithGroup(name string) slog.Handler {
	return &muteHandler{Handler: h.Handler.WithGroup(name), muted: h.muted}
}
