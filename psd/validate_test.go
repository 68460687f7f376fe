package psd

import (
	"errors"
	"testing"

	psderr "github.com/layerkit/psd-reader/errors"
)

func TestValidateExactly(t *testing.T) {
	if err := validate("header", "Signature", "8BPS", exactly(Signature)); err != nil {
		t.Errorf("exact match failed: %v", err)
	}

	err := validate("header", "Signature", "8BPX", exactly(Signature))
	var e *psderr.Error
	if !errors.As(err, &e) {
		t.Fatalf("validate = %v, want *errors.Error", err)
	}
	if e.Kind != psderr.KindFormatMismatch {
		t.Errorf("Kind = %q, want format_mismatch", e.Kind)
	}
	if e.Field != "Signature" || e.Expected != `"8BPS"` || e.Value != "8BPX" {
		t.Errorf("error = %+v", e)
	}
}

func TestValidateExactlyTypeMismatch(t *testing.T) {
	// A value of the wrong dynamic type never matches.
	if err := validate("header", "Version", uint32(1), exactly(uint16(1))); err == nil {
		t.Error("expected mismatch for differing types")
	}
}

func TestValidateBetween(t *testing.T) {
	c := between(1, 30000)
	for _, v := range []uint32{1, 15000, 30000} {
		if err := validate("header", "Height", v, c); err != nil {
			t.Errorf("value %d: %v", v, err)
		}
	}
	for _, v := range []uint32{0, 30001} {
		err := validate("header", "Height", v, c)
		var e *psderr.Error
		if !errors.As(err, &e) || e.Kind != psderr.KindRangeViolation {
			t.Errorf("value %d: got %v, want range_violation", v, err)
		}
	}

	err := validate("header", "Height", uint32(0), c)
	var e *psderr.Error
	errors.As(err, &e)
	if e.Expected != "1..30000" {
		t.Errorf("Expected = %q, want %q", e.Expected, "1..30000")
	}
}

func TestValidateOneOf(t *testing.T) {
	c := oneOf(1, 8, 16)
	for _, v := range []uint16{1, 8, 16} {
		if err := validate("header", "Depth", v, c); err != nil {
			t.Errorf("value %d: %v", v, err)
		}
	}
	for _, v := range []uint16{0, 4, 32} {
		err := validate("header", "Depth", v, c)
		var e *psderr.Error
		if !errors.As(err, &e) || e.Kind != psderr.KindRangeViolation {
			t.Errorf("value %d: got %v, want range_violation", v, err)
		}
	}

	err := validate("header", "Depth", uint16(4), c)
	var e *psderr.Error
	errors.As(err, &e)
	if e.Expected != "one of {1, 8, 16}" {
		t.Errorf("Expected = %q", e.Expected)
	}
}

func TestValidateSignedValues(t *testing.T) {
	if err := validate("layer", "Count", int16(-3), between(-100, 100)); err != nil {
		t.Errorf("signed value rejected: %v", err)
	}
}
