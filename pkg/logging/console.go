package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// levelPalette is the fixed severity-to-color table used by ConsoleHandler.
var levelPalette = map[slog.Level][]color.Attribute{
	LevelTrace:    {color.FgCyan},
	LevelDebug:    {color.FgBlue},
	LevelInfo:     {color.FgWhite},
	LevelWarning:  {color.FgYellow},
	LevelError:    {color.FgRed},
	LevelCritical: {color.FgRed, color.Bold},
}

// ConsoleHandlerOptions configures a ConsoleHandler.
type ConsoleHandlerOptions struct {
	// Level is the minimum level to emit. Defaults to LevelInfo.
	Level slog.Leveler

	// ClassLength is the maximum width of the logger name column. Longer
	// names keep their rightmost characters. Zero disables truncation.
	ClassLength int

	// Color enables ANSI color codes. Resolve a ColorMode with
	// ColorMode.Enabled before constructing the handler.
	Color bool
}

// ConsoleHandler implements slog.Handler for human-readable single-line output:
//
//	2024-03-01 14:05:09,123 - [WARNING] - app.storage - disk at 91%
//
// With color enabled the level token is colored per severity and the name is
// bold. Without color it is the plain-text file format.
type ConsoleHandler struct {
	opts  ConsoleHandlerOptions
	out   io.Writer
	mu    *sync.Mutex
	state handlerState

	levelColors map[slog.Level]*color.Color
	nameColor   *color.Color
}

// NewConsoleHandler creates a ConsoleHandler writing to out.
func NewConsoleHandler(out io.Writer, opts *ConsoleHandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &ConsoleHandlerOptions{}
	}

	h := &ConsoleHandler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}

	if opts.Color {
		h.levelColors = make(map[slog.Level]*color.Color, len(levelPalette))
		for level, attrs := range levelPalette {
			c := color.New(attrs...)
			c.EnableColor()
			h.levelColors[level] = c
		}
		h.nameColor = color.New(color.Bold)
		h.nameColor.EnableColor()
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats r as one line and writes it with a single Write call.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	name, attrs := h.state.recordAttrs(r)

	var buf bytes.Buffer
	buf.WriteString(recordTime(r).Format(ConsoleTimeFormat))
	buf.WriteString(" - ")

	label := "[" + LevelName(r.Level) + "]"
	if c, ok := h.levelColors[r.Level]; ok {
		label = c.Sprint(label)
	}
	buf.WriteString(label)
	buf.WriteString(" - ")

	name = truncateName(name, h.opts.ClassLength)
	if h.nameColor != nil {
		name = h.nameColor.Sprint(name)
	}
	buf.WriteString(name)
	buf.WriteString(" - ")
	buf.WriteString(r.Message)

	for _, a := range attrs {
		appendTextAttr(&buf, "", redactAttr(a))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

// appendTextAttr writes a as " key=value", flattening groups into dotted keys.
func appendTextAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	v := a.Value.Resolve()
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			appendTextAttr(buf, key, ga)
		}
		return
	}
	fmt.Fprintf(buf, " %s=%v", key, v.Any())
}

// WithAttrs returns a new ConsoleHandler with the given attributes.
// An attribute keyed NameKey sets the logger name instead.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	newH.state = h.state.withAttrs(attrs)
	return &newH
}

// WithGroup returns a new ConsoleHandler whose later attributes are
// rendered with the group name as a dotted key prefix.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.state = h.state.withGroup(name)
	return &newH
}
