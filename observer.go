package psdreader

import "go.uber.org/zap"

// Span locates an opaque byte range inside the source: payloads the
// decoder measures but does not interpret (color table, resource blocks,
// mask data, layer extra data, pixel planes).
type Span struct {
	Offset int64
	Length int64
}

// End returns the offset of the first byte past the span.
func (s Span) End() int64 {
	return s.Offset + s.Length
}

// Observer receives trace events at decode boundaries. Implementations
// must not retain the values they are handed past the call. A decode
// without an explicit observer uses NopObserver.
type Observer interface {
	// SectionStart fires before a section decoder consumes its first byte.
	SectionStart(name string, offset int64)
	// SectionEnd fires after a section decoder returns, with the number
	// of bytes the section consumed.
	SectionEnd(name string, offset, length int64)
	// Field fires after a semantically meaningful field is read and
	// validated.
	Field(section, label string, value any)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) SectionStart(string, int64)      {}
func (NopObserver) SectionEnd(string, int64, int64) {}
func (NopObserver) Field(string, string, any)       {}

// ZapObserver adapts a zap logger into an Observer, emitting one
// Debug-level entry per event.
func ZapObserver(log *zap.Logger) Observer {
	return zapObserver{log: log}
}

type zapObserver struct {
	log *zap.Logger
}

func (o zapObserver) SectionStart(name string, offset int64) {
	o.log.Debug("section start",
		zap.String("section", name),
		zap.Int64("offset", offset))
}

func (o zapObserver) SectionEnd(name string, offset, length int64) {
	o.log.Debug("section end",
		zap.String("section", name),
		zap.Int64("offset", offset),
		zap.Int64("length", length))
}

func (o zapObserver) Field(section, label string, value any) {
	o.log.Debug("field",
		zap.String("section", section),
		zap.String("field", label),
		zap.Any("value", value))
}
