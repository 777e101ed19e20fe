/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log wires slog for the whiteboard core: a one-line console
// handler (or JSON for machine consumption), an optional rotating file
// handler, and record enrichment with the board id carried in the
// calling context.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gowhiteboard/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization. Values can be provided
// directly or via environment variables:
//   - GWB_LOG_LEVEL=debug|info|warn|error
//   - GWB_LOG_FORMAT=console|json
//   - GWB_LOG_FILE=<path> (enables file logging with rotation)
//   - GWB_LOG_SOURCE=true|false (include source in JSON output)
//
// Defaults: INFO level, console format. The console handler never
// prints source locations; AddSource applies to the JSON handlers.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string // optional path for file logging (rotated)
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   *slog.Logger
)

// L returns the default application logger, initializing from env if needed.
func L() *slog.Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultLoggerMu.RLock()
	l = defaultLogger
	defaultLoggerMu.RUnlock()
	return l
}

// Init configures the global logger and sets slog.Default as well.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)
	format := strings.ToLower(strings.TrimSpace(opts.Format))

	var handlers []slog.Handler
	if format == "json" {
		handlers = append(handlers, slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}))
	} else {
		handlers = append(handlers, &consoleHandler{min: lvl, w: os.Stderr})
	}
	if strings.TrimSpace(opts.File) != "" {
		w := &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}))
	}

	h := handlers[0]
	if len(handlers) > 1 {
		h = &fanout{hs: handlers}
	}

	logger := slog.New(&boardEnricher{next: h}).With(
		slog.String("app", "gowhiteboard"),
		slog.String("ver", version.Version),
	)

	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
	slog.SetDefault(logger)
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("GWB_LOG_LEVEL", "info"),
		Format:    getenv("GWB_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("GWB_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("GWB_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

type boardKey struct{}

// WithBoard returns a context carrying the board id. Records logged with
// that context (InfoContext and friends) pick up a board attribute, so
// one process hosting several boards stays attributable.
func WithBoard(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, boardKey{}, id)
}

// boardEnricher injects the context's board id into every record.
type boardEnricher struct{ next slog.Handler }

func (e *boardEnricher) Enabled(ctx context.Context, level slog.Level) bool {
	return e.next.Enabled(ctx, level)
}

func (e *boardEnricher) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := ctx.Value(boardKey{}).(string); ok && id != "" {
		r = r.Clone()
		r.AddAttrs(slog.String("board", id))
	}
	return e.next.Handle(ctx, r)
}

func (e *boardEnricher) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &boardEnricher{next: e.next.WithAttrs(attrs)}
}

func (e *boardEnricher) WithGroup(name string) slog.Handler {
	return &boardEnricher{next: e.next.WithGroup(name)}
}

// parseLevel converts a string to slog.Level.
func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout replicates records to every handler and reports the first error.
type fanout struct{ hs []slog.Handler }

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f.hs {
		if err := h.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		hs[i] = h.WithAttrs(attrs)
	}
	return &fanout{hs: hs}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		hs[i] = h.WithGroup(name)
	}
	return &fanout{hs: hs}
}

// consoleHandler prints human-friendly one-line logs:
// ts LEVEL msg key=val...
type consoleHandler struct {
	min    slog.Leveler
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.min != nil {
		min = h.min.Level()
	}
	return level >= min
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	b.Grow(128)
	b.WriteString(ts.Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	write := func(a slog.Attr) {
		b.WriteByte(' ')
		b.WriteString(prefix)
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(attrValue(a.Value))
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	na := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	na = append(na, h.attrs...)
	na = append(na, attrs...)
	return &consoleHandler{min: h.min, w: h.w, attrs: na, groups: h.groups}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	ng := append(append([]string(nil), h.groups...), name)
	return &consoleHandler{min: h.min, w: h.w, attrs: h.attrs, groups: ng}
}

func levelTag(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return l.String()
	}
}

func attrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return v.String()
	}
}
