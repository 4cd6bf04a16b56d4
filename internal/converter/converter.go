// Package converter validates digit strings against a radix and re-encodes
// them in another radix.
//
// Every function is pure and safe for concurrent use. Values are bounded by
// the signed 64-bit ceiling (math.MaxInt64); anything larger is reported as
// a magnitude overflow instead of being approximated.
package converter

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/doeshing/baseconv/internal/domain"
)

// Alphabet holds the digit symbols in value order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Ceiling is the largest value the engine converts.
const Ceiling uint64 = math.MaxInt64

// digitValue maps a digit symbol to its value, or -1 if c is not in the
// alphabet. Letters are case-insensitive.
func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// IsValidDigits reports whether text is acceptable input for radix.
// Blank text is provisionally valid so nothing is flagged before the user
// has typed. Surrounding whitespace is ignored; any other character outside
// the radix's alphabet invalidates the whole string.
func IsValidDigits(text string, radix domain.Radix) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if !domain.RadixSetWide.Contains(radix) {
		return false
	}
	_, found := firstInvalidDigit(trimmed, radix)
	return !found
}

// firstInvalidDigit returns the first character of text that is not a digit
// of radix. Multi-byte characters are decoded whole; every one of them is
// invalid since the alphabet is ASCII.
func firstInvalidDigit(text string, radix domain.Radix) (rune, bool) {
	for i := 0; i < len(text); {
		if c := text[i]; c < utf8.RuneSelf {
			if v := digitValue(c); v < 0 || v >= int(radix) {
				return rune(c), true
			}
			i++
			continue
		}
		r, _ := utf8.DecodeRuneInString(text[i:])
		return r, true
	}
	return 0, false
}

// ConvertBase converts text between two radixes of the primary converter
// (binary, octal, decimal, hexadecimal).
func ConvertBase(text string, from, to domain.Radix) (domain.ConversionResult, error) {
	return Convert(domain.ConversionRequest{Text: text, From: from, To: to}, domain.RadixSetFixed)
}

// QuickConvert converts text between any two radixes from 2 to 36.
func QuickConvert(text string, from, to domain.Radix) (domain.ConversionResult, error) {
	return Convert(domain.ConversionRequest{Text: text, From: from, To: to}, domain.RadixSetWide)
}

// Convert checks req against the call site's radix set, parses the text and
// renders the value in the target radix. Failures are *domain.ConversionError
// values and no partial result is returned with them.
func Convert(req domain.ConversionRequest, set domain.RadixSet) (domain.ConversionResult, error) {
	if domain.IsBlank(req.Text) {
		return domain.ConversionResult{}, &domain.ConversionError{Kind: domain.EmptyInput}
	}
	for _, r := range []domain.Radix{req.From, req.To} {
		if !set.Contains(r) {
			return domain.ConversionResult{}, &domain.ConversionError{Kind: domain.UnsupportedRadix, Text: req.Text, Radix: r}
		}
	}
	value, err := Parse(req.Text, req.From)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	return domain.ConversionResult{Value: value, Rendered: Format(value, req.To)}, nil
}

// Parse reads text as an unsigned integer in radix. Illegal digits are
// reported before magnitude, so "9Z" in base 10 is an invalid digit even
// when the prefix alone would overflow.
func Parse(text string, radix domain.Radix) (uint64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, &domain.ConversionError{Kind: domain.EmptyInput}
	}
	if !domain.RadixSetWide.Contains(radix) {
		return 0, &domain.ConversionError{Kind: domain.UnsupportedRadix, Text: text, Radix: radix}
	}
	if digit, found := firstInvalidDigit(trimmed, radix); found {
		return 0, &domain.ConversionError{Kind: domain.InvalidDigit, Text: text, Radix: radix, Digit: digit, HasDigit: true}
	}
	// bitSize 63 caps the result at math.MaxInt64.
	value, err := strconv.ParseUint(trimmed, int(radix), 63)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &domain.ConversionError{Kind: domain.MagnitudeOverflow, Text: text, Radix: radix}
		}
		return 0, &domain.ConversionError{Kind: domain.InvalidDigit, Text: text, Radix: radix}
	}
	return value, nil
}

// Format renders value in radix with uppercase letters and no leading zeros.
// Zero renders as "0". radix must be within 2..36.
func Format(value uint64, radix domain.Radix) string {
	return strings.ToUpper(strconv.FormatUint(value, int(radix)))
}

