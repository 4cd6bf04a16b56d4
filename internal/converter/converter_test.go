package converter

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/doeshing/baseconv/internal/domain"
)

func TestIsValidDigits(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		radix domain.Radix
		want  bool
	}{
		{name: "blank binary", text: "", radix: domain.Binary, want: true},
		{name: "whitespace only", text: "   \t", radix: domain.Octal, want: true},
		{name: "binary digits", text: "101001", radix: domain.Binary, want: true},
		{name: "two in binary", text: "102", radix: domain.Binary, want: false},
		{name: "octal digits", text: "01234567", radix: domain.Octal, want: true},
		{name: "nine in octal", text: "9", radix: domain.Octal, want: false},
		{name: "G in octal", text: "G", radix: domain.Octal, want: false},
		{name: "G in hex", text: "G", radix: domain.Hexadecimal, want: false},
		{name: "G in base 17", text: "G", radix: 17, want: true},
		{name: "lowercase hex", text: "deadBEEF", radix: domain.Hexadecimal, want: true},
		{name: "leading zeros", text: "000010", radix: domain.Decimal, want: true},
		{name: "minus sign", text: "-5", radix: domain.Decimal, want: false},
		{name: "lone plus", text: "+", radix: domain.Hexadecimal, want: false},
		{name: "interior space", text: "1 0", radix: domain.Binary, want: false},
		{name: "surrounding space", text: " 7f ", radix: domain.Hexadecimal, want: true},
		{name: "base 36 z", text: "zz", radix: domain.MaxRadix, want: true},
		{name: "radix out of range", text: "1", radix: 37, want: false},
		{name: "unicode digit", text: "٣", radix: domain.Decimal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDigits(tt.text, tt.radix); got != tt.want {
				t.Fatalf("IsValidDigits(%q, %d) = %v, want %v", tt.text, tt.radix, got, tt.want)
			}
		})
	}
}

func TestBlankIsValidForEverySupportedRadix(t *testing.T) {
	for _, r := range domain.RadixSetWide.Radixes() {
		if !IsValidDigits("", r) {
			t.Fatalf("blank should be valid for base %d", r)
		}
	}
}

func TestConvertBase(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to domain.Radix
		value    uint64
		rendered string
	}{
		{name: "hex to binary", text: "FF", from: 16, to: 2, value: 255, rendered: "11111111"},
		{name: "binary to decimal", text: "1010", from: 2, to: 10, value: 10, rendered: "10"},
		{name: "decimal to hex uppercases", text: "48879", from: 10, to: 16, value: 48879, rendered: "BEEF"},
		{name: "octal to decimal", text: "777", from: 8, to: 10, value: 511, rendered: "511"},
		{name: "zero renders as 0", text: "0000", from: 2, to: 16, value: 0, rendered: "0"},
		{name: "leading zeros dropped", text: "0010", from: 10, to: 10, value: 10, rendered: "10"},
		{name: "lowercase input", text: "ff", from: 16, to: 8, value: 255, rendered: "377"},
		{name: "ceiling", text: "7FFFFFFFFFFFFFFF", from: 16, to: 10, value: math.MaxInt64, rendered: "9223372036854775807"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertBase(tt.text, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ConvertBase error: %v", err)
			}
			if got.Value != tt.value || got.Rendered != tt.rendered {
				t.Fatalf("ConvertBase(%q, %d, %d) = %+v, want {%d %s}", tt.text, tt.from, tt.to, got, tt.value, tt.rendered)
			}
		})
	}
}

func TestConvertBaseErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to domain.Radix
		want     error
		kind     domain.ErrorKind
	}{
		{name: "empty", text: "", from: 10, to: 2, want: domain.ErrEmptyInput, kind: domain.EmptyInput},
		{name: "blank", text: "  ", from: 10, to: 2, want: domain.ErrEmptyInput, kind: domain.EmptyInput},
		{name: "nine in octal", text: "9", from: 8, to: 10, want: domain.ErrInvalidDigit, kind: domain.InvalidDigit},
		{name: "negative", text: "-1", from: 10, to: 2, want: domain.ErrInvalidDigit, kind: domain.InvalidDigit},
		{name: "twenty nines", text: strings.Repeat("9", 20), from: 10, to: 16, want: domain.ErrMagnitudeOverflow, kind: domain.MagnitudeOverflow},
		{name: "just past ceiling", text: "9223372036854775808", from: 10, to: 2, want: domain.ErrMagnitudeOverflow, kind: domain.MagnitudeOverflow},
		{name: "invalid digit beats overflow", text: strings.Repeat("9", 20) + "Z", from: 10, to: 2, want: domain.ErrInvalidDigit, kind: domain.InvalidDigit},
		{name: "base 3 not fixed", text: "12", from: 3, to: 10, want: domain.ErrUnsupportedRadix, kind: domain.UnsupportedRadix},
		{name: "target not fixed", text: "12", from: 10, to: 36, want: domain.ErrUnsupportedRadix, kind: domain.UnsupportedRadix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertBase(tt.text, tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var convErr *domain.ConversionError
			if !errors.As(err, &convErr) || convErr.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %v", tt.kind, err)
			}
			if got != (domain.ConversionResult{}) {
				t.Fatalf("expected no partial result, got %+v", got)
			}
		})
	}
}

func TestInvalidDigitReportsOffendingCharacter(t *testing.T) {
	_, err := ConvertBase("12a4", domain.Decimal, domain.Binary)
	var convErr *domain.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if !convErr.HasDigit || convErr.Digit != 'a' || convErr.Radix != domain.Decimal {
		t.Fatalf("unexpected error detail: %+v", convErr)
	}
	if convErr.Message() != "Invalid Decimal number" {
		t.Fatalf("unexpected message %q", convErr.Message())
	}
}

func TestInvalidDigitDetail(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		digit rune
		msg   string
	}{
		{"multibyte", "1\u00e9", '\u00e9', "invalid digit 'é' for base 10"},
		{"nul", "\x00", 0, `invalid digit '\x00' for base 10`},
		{"nul after digits", "12\x003", 0, `invalid digit '\x00' for base 10`},
		{"invalid utf-8", "1\xff", utf8.RuneError, "invalid digit '\uFFFD' for base 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertBase(tt.text, domain.Decimal, domain.Binary)
			var convErr *domain.ConversionError
			if !errors.As(err, &convErr) {
				t.Fatalf("expected ConversionError, got %v", err)
			}
			if !convErr.HasDigit || convErr.Digit != tt.digit {
				t.Fatalf("digit = %q (set %v), want %q", convErr.Digit, convErr.HasDigit, tt.digit)
			}
			if convErr.Error() != tt.msg {
				t.Fatalf("Error() = %q, want %q", convErr.Error(), tt.msg)
			}
		})
	}
}

func TestQuickConvertAcceptsWideRange(t *testing.T) {
	got, err := QuickConvert("zz", 36, 10)
	if err != nil {
		t.Fatalf("QuickConvert error: %v", err)
	}
	if got.Value != 1295 || got.Rendered != "1295" {
		t.Fatalf("unexpected result %+v", got)
	}

	got, err = QuickConvert("1295", 10, 36)
	if err != nil {
		t.Fatalf("QuickConvert error: %v", err)
	}
	if got.Rendered != "ZZ" {
		t.Fatalf("expected uppercase ZZ, got %q", got.Rendered)
	}

	if _, err := QuickConvert("1", 1, 10); !errors.Is(err, domain.ErrUnsupportedRadix) {
		t.Fatalf("expected unsupported radix for base 1, got %v", err)
	}
	if _, err := QuickConvert("1", 10, 37); !errors.Is(err, domain.ErrUnsupportedRadix) {
		t.Fatalf("expected unsupported radix for base 37, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 7, 8, 15, 16, 35, 36, 255, 1 << 31, 1<<32 + 17, 1234567890123, math.MaxInt64 - 1, math.MaxInt64}
	for _, r := range domain.RadixSetWide.Radixes() {
		for _, v := range values {
			rendered := Format(v, r)
			got, err := Parse(rendered, r)
			if err != nil {
				t.Fatalf("Parse(%q, %d) error: %v", rendered, r, err)
			}
			if got != v {
				t.Fatalf("round trip base %d: got %d, want %d", r, got, v)
			}
		}
	}
}

func TestRadixToSelfCanonicalizes(t *testing.T) {
	tests := []struct {
		text  string
		radix domain.Radix
		want  string
	}{
		{text: "000", radix: domain.Binary, want: "0"},
		{text: "0017", radix: domain.Octal, want: "17"},
		{text: "00ab", radix: domain.Hexadecimal, want: "AB"},
		{text: "42", radix: domain.Decimal, want: "42"},
	}
	for _, tt := range tests {
		got, err := ConvertBase(tt.text, tt.radix, tt.radix)
		if err != nil {
			t.Fatalf("ConvertBase(%q) error: %v", tt.text, err)
		}
		if got.Rendered != tt.want {
			t.Fatalf("ConvertBase(%q, %d, %d) rendered %q, want %q", tt.text, tt.radix, tt.radix, got.Rendered, tt.want)
		}
	}
}

func TestConvertThereAndBack(t *testing.T) {
	fixed := domain.RadixSetFixed.Radixes()
	for _, from := range fixed {
		for _, to := range fixed {
			forward, err := ConvertBase("00101", from, to)
			if err != nil {
				t.Fatalf("forward %d->%d: %v", from, to, err)
			}
			back, err := ConvertBase(forward.Rendered, to, from)
			if err != nil {
				t.Fatalf("back %d->%d: %v", to, from, err)
			}
			if back.Rendered != "101" {
				t.Fatalf("%d->%d->%d gave %q", from, to, from, back.Rendered)
			}
			if back.Value != forward.Value {
				t.Fatalf("value changed across round trip: %d vs %d", back.Value, forward.Value)
			}
		}
	}
}

func TestConvertIsSafeForConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n uint64) {
			defer wg.Done()
			text := Format(n, domain.Decimal)
			got, err := ConvertBase(text, domain.Decimal, domain.Hexadecimal)
			if err != nil {
				t.Errorf("ConvertBase(%s) error: %v", text, err)
				return
			}
			if got.Rendered != Format(n, domain.Hexadecimal) {
				t.Errorf("ConvertBase(%s) = %s", text, got.Rendered)
			}
		}(uint64(i) * 1000003)
	}
	wg.Wait()
}
