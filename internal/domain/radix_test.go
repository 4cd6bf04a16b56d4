package domain_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/baseconv/internal/domain"
)

func TestParseRadix(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Radix
		wantErr bool
	}{
		{in: "16", want: domain.Hexadecimal},
		{in: "hex", want: domain.Hexadecimal},
		{in: "Binary", want: domain.Binary},
		{in: " oct ", want: domain.Octal},
		{in: "dec", want: domain.Decimal},
		// out-of-range numbers parse; the engine rejects them
		{in: "37", want: 37},
		{in: "", wantErr: true},
		{in: "sexagesimal", wantErr: true},
	}

	for _, tt := range tests {
		got, err := domain.ParseRadix(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseRadix(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseRadix(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRadixSetContains(t *testing.T) {
	tests := []struct {
		set   domain.RadixSet
		radix domain.Radix
		want  bool
	}{
		{domain.RadixSetFixed, domain.Octal, true},
		{domain.RadixSetFixed, 3, false},
		{domain.RadixSetFixed, 36, false},
		{domain.RadixSetWide, 2, true},
		{domain.RadixSetWide, 36, true},
		{domain.RadixSetWide, 1, false},
		{domain.RadixSetWide, 37, false},
	}
	for _, tt := range tests {
		if got := tt.set.Contains(tt.radix); got != tt.want {
			t.Errorf("%s.Contains(%d) = %v, want %v", tt.set, tt.radix, got, tt.want)
		}
	}
	if n := len(domain.RadixSetWide.Radixes()); n != 35 {
		t.Errorf("wide set has %d radixes, want 35", n)
	}
}

func TestRadixName(t *testing.T) {
	if got := domain.Hexadecimal.Name(); got != "Hexadecimal" {
		t.Errorf("Name() = %q", got)
	}
	if got := domain.Radix(36).Name(); got != "Base 36" {
		t.Errorf("Name() = %q", got)
	}
}

func TestParseConversionPair(t *testing.T) {
	pair, err := domain.ParseConversionPair("Hexadecimal to Binary")
	if err != nil {
		t.Fatal(err)
	}
	want := domain.ConversionPair{From: domain.Hexadecimal, To: domain.Binary}
	if pair != want {
		t.Fatalf("got %v, want %v", pair, want)
	}
	if pair.String() != "Hexadecimal to Binary" {
		t.Fatalf("String() = %q", pair.String())
	}
	if got := pair.Swap(); got != (domain.ConversionPair{From: domain.Binary, To: domain.Hexadecimal}) {
		t.Fatalf("Swap() = %v", got)
	}

	if _, err := domain.ParseConversionPair("16 -> 2"); err == nil {
		t.Fatal("expected malformed label to fail")
	}
	if _, err := domain.ParseConversionPair("Hex to Roman"); err == nil {
		t.Fatal("expected unknown radix to fail")
	}
}

func TestFixedConversions(t *testing.T) {
	pairs := domain.FixedConversions()
	if len(pairs) != 12 {
		t.Fatalf("got %d pairs, want 12", len(pairs))
	}
	want := []string{"Decimal to Binary", "Decimal to Octal", "Decimal to Hexadecimal"}
	got := []string{pairs[0].String(), pairs[1].String(), pairs[2].String()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("first pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestConversionErrorIs(t *testing.T) {
	err := error(&domain.ConversionError{Kind: domain.InvalidDigit, Text: "G", Radix: domain.Hexadecimal, Digit: 'G', HasDigit: true})
	if !errors.Is(err, domain.ErrInvalidDigit) {
		t.Fatal("expected kind match")
	}
	if errors.Is(err, domain.ErrMagnitudeOverflow) {
		t.Fatal("different kinds must not match")
	}
	var convErr *domain.ConversionError
	if !errors.As(err, &convErr) || convErr.Message() != "Invalid Hexadecimal number" {
		t.Fatalf("Message() = %q", convErr.Message())
	}
}
