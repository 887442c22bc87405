package grammar

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nihei9/greibach/grammar/symbol"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-production logging inside the normalization stages.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

var logCtx = context.Background()

// logger wraps slog.Logger with nil-safe helpers. The zero value discards everything.
type logger struct {
	l *slog.Logger
}

func (l logger) enabled(level slog.Level) bool {
	return l.l != nil && l.l.Enabled(logCtx, level)
}

func (l logger) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.enabled(level) {
		l.l.LogAttrs(logCtx, level, msg, attrs...)
	}
}

func (l logger) debug(msg string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, msg, attrs...)
}

func (l logger) traceEnabled() bool {
	return l.enabled(LevelTrace)
}

func (l logger) trace(msg string, attrs ...slog.Attr) {
	l.log(LevelTrace, msg, attrs...)
}

func symbolsAttr(key string, syms []symbol.Symbol) slog.Attr {
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = sym.Name()
	}
	return slog.String(key, strings.Join(names, " "))
}

func productionAttr(prod *Production) slog.Attr {
	return slog.String("production", prod.String())
}
