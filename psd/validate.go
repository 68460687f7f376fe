package psd

import (
	"fmt"
	"strconv"
	"strings"

	psderr "github.com/layerkit/psd-reader/errors"
)

// constraint is exactly one of: an exact match, an inclusive numeric
// range, or membership in an explicit finite set.
type constraint interface {
	ok(value any) bool
	expected() string
	kind() psderr.Kind
}

// exactly matches a single fixed value. Violations are format mismatches.
func exactly[T comparable](want T) constraint {
	return exactConstraint[T]{want: want}
}

type exactConstraint[T comparable] struct {
	want T
}

func (c exactConstraint[T]) ok(value any) bool {
	got, ok := value.(T)
	return ok && got == c.want
}

func (c exactConstraint[T]) expected() string {
	return formatValue(c.want)
}

func (c exactConstraint[T]) kind() psderr.Kind {
	return psderr.KindFormatMismatch
}

// between matches any integer in the inclusive range [lo, hi].
// Violations are range violations.
func between(lo, hi int64) constraint {
	return rangeConstraint{lo: lo, hi: hi}
}

type rangeConstraint struct {
	lo, hi int64
}

func (c rangeConstraint) ok(value any) bool {
	v, ok := toInt64(value)
	return ok && v >= c.lo && v <= c.hi
}

func (c rangeConstraint) expected() string {
	return fmt.Sprintf("%d..%d", c.lo, c.hi)
}

func (c rangeConstraint) kind() psderr.Kind {
	return psderr.KindRangeViolation
}

// oneOf matches any integer in the given set. Violations are range
// violations.
func oneOf(values ...int64) constraint {
	return setConstraint{values: values}
}

type setConstraint struct {
	values []int64
}

func (c setConstraint) ok(value any) bool {
	v, ok := toInt64(value)
	if !ok {
		return false
	}
	for _, want := range c.values {
		if v == want {
			return true
		}
	}
	return false
}

func (c setConstraint) expected() string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "one of {" + strings.Join(parts, ", ") + "}"
}

func (c setConstraint) kind() psderr.Kind {
	return psderr.KindRangeViolation
}

// validate checks a freshly read field against its constraint and returns
// a structured error naming the field, the constraint, and the observed
// value on violation. Callers invoke it immediately after the read; a
// failure aborts the surrounding section decode.
func validate(section, label string, value any, c constraint) error {
	if c.ok(value) {
		return nil
	}
	return &psderr.Error{
		Kind:     c.kind(),
		Section:  section,
		Field:    label,
		Expected: c.expected(),
		Value:    value,
	}
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
