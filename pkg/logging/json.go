package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"
)

// JSONHandlerOptions configures a JSONHandler.
type JSONHandlerOptions struct {
	// Level is the minimum level to emit. Defaults to LevelInfo.
	Level slog.Leveler
}

// JSONHandler implements slog.Handler for JSON Lines output. Every record is
// written as exactly one line:
//
//	{"timestamp":"2024-03-01T14:05:09.123456+01:00","level":"WARNING","name":"app.storage","message":"disk at 91%"}
//
// An error attached under ErrorKey adds an "exception" key and any other
// attributes are collected under "extra". Both keys are omitted when empty.
type JSONHandler struct {
	opts  JSONHandlerOptions
	out   io.Writer
	mu    *sync.Mutex
	state handlerState
}

var _ slog.Handler = (*JSONHandler)(nil)

// jsonRecord fixes the key order of an encoded line.
type jsonRecord struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Name      string         `json:"name"`
	Message   string         `json:"message"`
	Exception string         `json:"exception,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// NewJSONHandler creates a JSONHandler writing to out.
func NewJSONHandler(out io.Writer, opts *JSONHandlerOptions) *JSONHandler {
	if opts == nil {
		opts = &JSONHandlerOptions{}
	}
	return &JSONHandler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *JSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle encodes r as one JSON line. Values that cannot be encoded are
// replaced by their string form so the record itself is never lost.
func (h *JSONHandler) Handle(_ context.Context, r slog.Record) error {
	name, attrs := h.state.recordAttrs(r)

	rec := jsonRecord{
		Timestamp: recordTime(r).Format(JSONTimeFormat),
		Level:     LevelName(r.Level),
		Name:      name,
		Message:   r.Message,
	}

	extra := make(map[string]any)
	for _, a := range attrs {
		if a.Key == ErrorKey {
			if err, ok := a.Value.Resolve().Any().(error); ok && err != nil {
				rec.Exception = fmt.Sprintf("%+v", err)
				continue
			}
		}
		addJSONAttr(extra, redactAttr(a))
	}
	if len(extra) > 0 {
		rec.Extra = extra
	}

	line, err := encodeJSONLine(rec)
	if err != nil {
		rec.Extra = map[string]any{"encode_error": err.Error()}
		if line, err = encodeJSONLine(rec); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(line)
	return err
}

// WithAttrs returns a new JSONHandler with the given attributes.
// An attribute keyed NameKey sets the logger name instead.
func (h *JSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	newH.state = h.state.withAttrs(attrs)
	return &newH
}

// WithGroup returns a new JSONHandler whose later attributes are nested
// under name inside "extra".
func (h *JSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.state = h.state.withGroup(name)
	return &newH
}

// encodeJSONLine encodes v without HTML escaping. The encoder terminates
// the output with a newline.
func encodeJSONLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addJSONAttr stores a in m. Groups become nested objects; repeated groups
// with the same key are merged.
func addJSONAttr(m map[string]any, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		m[a.Key] = jsonValue(v)
		return
	}

	group := v.Group()
	if len(group) == 0 {
		return
	}
	target := m
	if a.Key != "" {
		sub, ok := m[a.Key].(map[string]any)
		if !ok {
			sub = make(map[string]any, len(group))
			m[a.Key] = sub
		}
		target = sub
	}
	for _, ga := range group {
		addJSONAttr(target, ga)
	}
}

// jsonValue converts v to something encoding/json accepts.
func jsonValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return f
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	default:
		x := v.Any()
		if err, ok := x.(error); ok {
			return err.Error()
		}
		b, err := marshalAny(x)
		if err != nil {
			return fmt.Sprintf("%+v", x)
		}
		return json.RawMessage(b)
	}
}

// marshalAny is json.Marshal that turns a panicking MarshalJSON or
// MarshalText into an error.
func marshalAny(x any) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("marshaling %T: %v", x, r)
		}
	}()
	return json.Marshal(x)
}
