// Package errors provides structured error types for the psd-reader library.
//
// Errors are categorized by Kind (what went wrong) and carry the section
// and field they arose in, the expected constraint, and the observed value.
// Every kind is fatal to the decode that raised it; there is no
// warning-level class.
//
// Use the convenience constructors for the common patterns:
//
//	err := errors.FormatMismatch("header", "Signature", `"8BPS"`, got)
//	err := errors.RangeViolation("header", "Height", "1..30000", 0)
//	err := errors.Truncation("Signature", 4, 3)
//
// All errors implement the standard error interface and support
// errors.Is/As; Is matches on Kind (and Section when the target sets one).
package errors
