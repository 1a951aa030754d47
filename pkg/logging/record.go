package logging

import (
	"log/slog"
	"slices"
	"time"
)

// Attribute keys with special meaning to the handlers in this package.
const (
	// NameKey carries the logger name. Handlers lift it out of the attribute
	// list and render it in the name column.
	NameKey = "logger"

	// ErrorKey carries an error attached with Logger.Exception. The JSON
	// handler renders it under "exception".
	ErrorKey = "err"

	// RootName is the name of loggers that were never given one.
	RootName = "root"
)

// Timestamp layouts.
const (
	// ConsoleTimeFormat is used by ConsoleHandler, e.g. "2024-03-01 14:05:09,123".
	ConsoleTimeFormat = "2006-01-02 15:04:05,000"

	// JSONTimeFormat is ISO-8601 with microseconds and the local UTC offset.
	JSONTimeFormat = "2006-01-02T15:04:05.000000-07:00"
)

// handlerState is the part of a handler that WithAttrs and WithGroup
// derive: the logger name and the attributes collected so far. Attributes
// added inside a group are stored already nested in that group.
type handlerState struct {
	name   string
	attrs  []slog.Attr
	groups []string
}

func (s handlerState) withAttrs(attrs []slog.Attr) handlerState {
	var kept []slog.Attr
	for _, a := range attrs {
		if a.Key == NameKey && len(s.groups) == 0 {
			s.name = a.Value.Resolve().String()
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) > 0 {
		s.attrs = append(slices.Clip(s.attrs), nestInGroups(s.groups, kept)...)
	}
	return s
}

func (s handlerState) withGroup(name string) handlerState {
	s.groups = append(slices.Clip(s.groups), name)
	return s
}

// recordAttrs returns the logger name and the full attribute list for r:
// handler attributes first, then the record's own.
func (s handlerState) recordAttrs(r slog.Record) (string, []slog.Attr) {
	name := s.name
	var own []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == NameKey && len(s.groups) == 0 {
			name = a.Value.Resolve().String()
			return true
		}
		own = append(own, a)
		return true
	})
	if name == "" {
		name = RootName
	}

	attrs := make([]slog.Attr, 0, len(s.attrs)+1)
	attrs = append(attrs, s.attrs...)
	attrs = append(attrs, nestInGroups(s.groups, own)...)
	return name, attrs
}

// nestInGroups wraps attrs in the given groups, outermost first.
func nestInGroups(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(attrs) == 0 {
		return nil
	}
	for i := len(groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}
	return attrs
}

// recordTime returns the record time in local time, substituting the
// current time for records built without one.
func recordTime(r slog.Record) time.Time {
	if r.Time.IsZero() {
		return time.Now()
	}
	return r.Time.Local()
}

// truncateName keeps the rightmost n characters of name so that the leaf
// of a dotted logger name stays visible. n <= 0 disables truncation.
func truncateName(name string, n int) string {
	if n <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= n {
		return name
	}
	return string(runes[len(runes)-n:])
}
