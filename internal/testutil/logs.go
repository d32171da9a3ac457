package testutil

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// LogEntry is one recorded log call. Attrs holds both the call's
// attributes and those added with Logger.With, keyed by (group-qualified)
// name.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]slog.Value
}

// Attr returns the resolved value of an attribute as a Go value.
func (e LogEntry) Attr(key string) any {
	v, ok := e.Attrs[key]
	if !ok {
		return nil
	}
	return v.Any()
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogRecorder is a slog.Handler that keeps every record in memory so tests
// can assert on diagnostics without capturing process output.
//
// Thread-safety: handlers derived with WithAttrs/WithGroup share storage
// guarded by a mutex.
type LogRecorder struct {
	store  *logStore
	attrs  []slog.Attr
	prefix string
}

// NewLogRecorder creates an empty recorder.
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{store: &logStore{}}
}

// Logger returns a logger writing to the recorder.
func (r *LogRecorder) Logger() *slog.Logger {
	return slog.New(r)
}

// Enabled records every level.
func (r *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle stores the record.
func (r *LogRecorder) Handle(_ context.Context, rec slog.Record) error {
	entry := LogEntry{
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   make(map[string]slog.Value, len(r.attrs)+rec.NumAttrs()),
	}
	for _, a := range r.attrs {
		entry.Attrs[a.Key] = a.Value.Resolve()
	}
	rec.Attrs(func(a slog.Attr) bool {
		entry.Attrs[r.prefix+a.Key] = a.Value.Resolve()
		return true
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries = append(r.store.entries, entry)
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &LogRecorder{store: r.store, attrs: slices.Clone(r.attrs), prefix: r.prefix}
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: r.prefix + a.Key, Value: a.Value})
	}
	return next
}

// WithGroup returns a handler that qualifies attribute keys with name.
func (r *LogRecorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	return &LogRecorder{store: r.store, attrs: slices.Clone(r.attrs), prefix: r.prefix + name + "."}
}

// Entries returns a copy of everything recorded so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return slices.Clone(r.store.entries)
}

// WithMessage returns the entries logged with msg.
func (r *LogRecorder) WithMessage(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range r.Entries() {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards recorded entries.
func (r *LogRecorder) Reset() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries = nil
}
