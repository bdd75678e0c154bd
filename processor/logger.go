package processor

import "log/slog"

// Logger receives the processor's structured events. Attributes follow the
// log/slog convention of alternating keys and values:
//
//	logger.Debug("pattern compiled", "pattern", 3, "flags", "0x00000001")
//
// A *slog.Logger satisfies it through [NewSlogAdapter]; zap's SugaredLogger
// or a zerolog wrapper need only the five methods below. With
// [WithConcurrency] above one, calls arrive from several goroutines.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	With(attrs ...any) Logger
}

// NopLogger drops every record. Process uses it unless [WithLogger] is given.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// With returns n.
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter forwards to a *slog.Logger.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter adapts l; a nil l falls back to slog.Default().
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l}
}

func (a *SlogAdapter) Debug(msg string, attrs ...any) { a.l.Debug(msg, attrs...) }
func (a *SlogAdapter) Info(msg string, attrs ...any)  { a.l.Info(msg, attrs...) }
func (a *SlogAdapter) Warn(msg string, attrs ...any)  { a.l.Warn(msg, attrs...) }
func (a *SlogAdapter) Error(msg string, attrs ...any) { a.l.Error(msg, attrs...) }

// With returns an adapter whose records carry attrs.
func (a *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{l: a.l.With(attrs...)}
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)
