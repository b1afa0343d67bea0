package logging

import (
	"log/slog"
	"time"
)

// Structured keys shared by every component.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
	// FieldLanguage is the ISO 639-3 code a line refers to.
	FieldLanguage = "language"
	// FieldFile is a corpus file name relative to the corpus root.
	FieldFile = "file"
)

type Attr = slog.Attr

func Any(key string, value any) Attr                { return slog.Any(key, value) }
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }
func Int(key string, value int) Attr                { return slog.Int(key, value) }
func String(key, value string) Attr                 { return slog.String(key, value) }

// Error records err under the "error" key.
func Error(err error) Attr { return slog.Any("error", err) }

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning that always carries event_type, error_hint,
// and impact. Callers may supply their own hint or impact.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	have := make(map[string]bool, len(attrs))
	args := make([]any, 0, len(attrs)+3)
	for _, attr := range attrs {
		have[attr.Key] = true
		args = append(args, attr)
	}
	if !have[FieldEventType] {
		args = append(args, String(FieldEventType, eventType))
	}
	if !have[FieldErrorHint] {
		args = append(args, String(FieldErrorHint, "check logs for details"))
	}
	if !have[FieldImpact] {
		args = append(args, String(FieldImpact, "operation completed with warnings"))
	}
	logger.Warn(msg, args...)
}
