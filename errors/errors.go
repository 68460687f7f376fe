package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes a decode failure.
type Kind string

const (
	// KindFormatMismatch means a fixed tag or table-mapped code did not
	// match any expected value (signature, version, blend key, ...).
	KindFormatMismatch Kind = "format_mismatch"

	// KindRangeViolation means a numeric field fell outside its declared
	// inclusive range or allowed set.
	KindRangeViolation Kind = "range_violation"

	// KindTruncation means the source held fewer bytes than a read or
	// skip required.
	KindTruncation Kind = "truncation"

	// KindInconsistency means a section's declared length did not match
	// the bytes actually consumed.
	KindInconsistency Kind = "structural_inconsistency"
)

// Error is the structured error type returned by every decode failure.
// All four kinds are terminal: the decode that produced one is abandoned
// and no partial document is returned.
type Error struct {
	Value     any
	Cause     error
	Kind      Kind
	Section   string
	Field     string
	Expected  string
	Detail    string
	Requested int64
	Available int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Section != "" {
		b.WriteByte('[')
		b.WriteString(e.Section)
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
	}

	switch {
	case e.Expected != "" && e.Value != nil:
		fmt.Fprintf(&b, ": expected %s, got %v", e.Expected, e.Value)
	case e.Expected != "":
		b.WriteString(": expected ")
		b.WriteString(e.Expected)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when
// their kinds are equal and target's section is empty or equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Section != "" && t.Section != e.Section {
		return false
	}
	return e.Kind == t.Kind
}

// WithSection fills the section name unless one is already set and
// returns the error. Used by section decoders to annotate failures
// raised below them (cursor reads carry no section context).
func (e *Error) WithSection(section string) *Error {
	if e.Section == "" {
		e.Section = section
	}
	return e
}

// FormatMismatch reports a field whose value did not equal a fixed tag
// or match any entry of a closed code table.
func FormatMismatch(section, field, expected string, got any) *Error {
	return &Error{
		Kind:     KindFormatMismatch,
		Section:  section,
		Field:    field,
		Expected: expected,
		Value:    got,
	}
}

// RangeViolation reports a numeric field outside its inclusive range or
// allowed set.
func RangeViolation(section, field, expected string, got any) *Error {
	return &Error{
		Kind:     KindRangeViolation,
		Section:  section,
		Field:    field,
		Expected: expected,
		Value:    got,
	}
}

// Truncation reports a read or skip of requested bytes against a source
// with only available bytes left.
func Truncation(field string, requested, available int64) *Error {
	return &Error{
		Kind:      KindTruncation,
		Field:     field,
		Requested: requested,
		Available: available,
		Detail:    fmt.Sprintf("requested %d bytes, only %d available", requested, available),
	}
}

// Inconsistent reports a section whose declared length disagrees with
// the bytes actually consumed.
func Inconsistent(section string, detail string, args ...any) *Error {
	return &Error{
		Kind:    KindInconsistency,
		Section: section,
		Detail:  fmt.Sprintf(detail, args...),
	}
}
