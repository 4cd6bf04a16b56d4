package domain

import (
	"fmt"
	"strings"
)

// ConversionRequest is one conversion attempt. It is built per attempt and
// never mutated.
type ConversionRequest struct {
	Text string `json:"text"`
	From Radix  `json:"from"`
	To   Radix  `json:"to"`
}

// ConversionResult is the successful outcome of a conversion.
type ConversionResult struct {
	Value    uint64 `json:"value"`
	Rendered string `json:"rendered"`
}

// ErrorKind classifies conversion failures.
type ErrorKind string

const (
	EmptyInput        ErrorKind = "empty_input"
	InvalidDigit      ErrorKind = "invalid_digit"
	MagnitudeOverflow ErrorKind = "magnitude_overflow"
	UnsupportedRadix  ErrorKind = "unsupported_radix"
)

// ConversionError reports why a conversion was rejected. Two conversion
// errors match under errors.Is when their kinds are equal, so callers can
// test against the Err* sentinels below.
type ConversionError struct {
	Kind  ErrorKind
	Text  string
	Radix Radix
	// Digit is the first offending character when HasDigit is set; it may
	// legitimately be NUL.
	Digit    rune
	HasDigit bool
}

var (
	ErrEmptyInput        = &ConversionError{Kind: EmptyInput}
	ErrInvalidDigit      = &ConversionError{Kind: InvalidDigit}
	ErrMagnitudeOverflow = &ConversionError{Kind: MagnitudeOverflow}
	ErrUnsupportedRadix  = &ConversionError{Kind: UnsupportedRadix}
)

func (e *ConversionError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "empty input"
	case InvalidDigit:
		if e.HasDigit {
			return fmt.Sprintf("invalid digit %q for base %d", e.Digit, int(e.Radix))
		}
		return fmt.Sprintf("invalid digits for base %d", int(e.Radix))
	case MagnitudeOverflow:
		return fmt.Sprintf("%q exceeds the 64-bit magnitude ceiling", e.Text)
	case UnsupportedRadix:
		return fmt.Sprintf("base %d is not supported", int(e.Radix))
	default:
		return string(e.Kind)
	}
}

// Is matches on kind only.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	return ok && t.Kind == e.Kind
}

// Message is the text shown to the user next to the input field.
func (e *ConversionError) Message() string {
	switch e.Kind {
	case EmptyInput:
		return "Please enter a number"
	case InvalidDigit:
		return fmt.Sprintf("Invalid %s number", e.Radix.Name())
	case MagnitudeOverflow:
		return "Number is too large to convert"
	case UnsupportedRadix:
		return fmt.Sprintf("Unsupported base: %d", int(e.Radix))
	default:
		return "Conversion error: " + e.Error()
	}
}

// IsBlank reports whether text has nothing to convert.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
