package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Radix is the base of a positional numeral system.
type Radix int

const (
	Binary      Radix = 2
	Octal       Radix = 8
	Decimal     Radix = 10
	Hexadecimal Radix = 16

	// MinRadix and MaxRadix bound the quick-convert call site.
	MinRadix Radix = 2
	MaxRadix Radix = 36
)

// Name returns the human name used in conversion labels ("Hexadecimal"),
// or "Base N" for radixes without one.
func (r Radix) Name() string {
	switch r {
	case Binary:
		return "Binary"
	case Octal:
		return "Octal"
	case Decimal:
		return "Decimal"
	case Hexadecimal:
		return "Hexadecimal"
	default:
		return fmt.Sprintf("Base %d", int(r))
	}
}

func (r Radix) String() string {
	return strconv.Itoa(int(r))
}

// RadixSet identifies which bases a call site accepts.
type RadixSet int

const (
	// RadixSetFixed is the primary converter: binary, octal, decimal, hexadecimal.
	RadixSetFixed RadixSet = iota
	// RadixSetWide is the quick-convert widget: every base from 2 to 36.
	RadixSetWide
)

// Contains reports whether r is legal input for the call site.
func (s RadixSet) Contains(r Radix) bool {
	switch s {
	case RadixSetFixed:
		return r == Binary || r == Octal || r == Decimal || r == Hexadecimal
	case RadixSetWide:
		return r >= MinRadix && r <= MaxRadix
	default:
		return false
	}
}

// Radixes lists the members of the set in ascending order.
func (s RadixSet) Radixes() []Radix {
	if s == RadixSetFixed {
		return []Radix{Binary, Octal, Decimal, Hexadecimal}
	}
	out := make([]Radix, 0, MaxRadix-MinRadix+1)
	for r := MinRadix; r <= MaxRadix; r++ {
		out = append(out, r)
	}
	return out
}

func (s RadixSet) String() string {
	switch s {
	case RadixSetFixed:
		return "fixed"
	case RadixSetWide:
		return "wide"
	default:
		return "unknown"
	}
}

var radixNames = map[string]Radix{
	"b":           Binary,
	"bin":         Binary,
	"binary":      Binary,
	"o":           Octal,
	"oct":         Octal,
	"octal":       Octal,
	"d":           Decimal,
	"dec":         Decimal,
	"decimal":     Decimal,
	"h":           Hexadecimal,
	"x":           Hexadecimal,
	"hex":         Hexadecimal,
	"hexadecimal": Hexadecimal,
}

// ParseRadix accepts either a number ("16") or a name ("hex", "Hexadecimal").
// Range checking is left to the conversion engine so that an out-of-range
// number surfaces as an unsupported-radix failure rather than a parse error.
func ParseRadix(input string) (Radix, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("radix must not be empty")
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return Radix(n), nil
	}
	if r, ok := radixNames[strings.ToLower(trimmed)]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown radix %q", input)
}

// ConversionPair is a (from, to) selection such as "Decimal to Binary".
type ConversionPair struct {
	From Radix `json:"from" yaml:"from"`
	To   Radix `json:"to" yaml:"to"`
}

// Swap returns the pair with source and target exchanged.
func (p ConversionPair) Swap() ConversionPair {
	return ConversionPair{From: p.To, To: p.From}
}

func (p ConversionPair) String() string {
	return p.From.Name() + " to " + p.To.Name()
}

// ParseConversionPair parses labels of the form "Hexadecimal to Binary".
// Either side may also be a number or a short name ("16 to bin").
func ParseConversionPair(label string) (ConversionPair, error) {
	parts := strings.SplitN(strings.TrimSpace(label), " to ", 2)
	if len(parts) != 2 {
		return ConversionPair{}, fmt.Errorf("conversion %q must look like \"Decimal to Binary\"", label)
	}
	from, err := ParseRadix(parts[0])
	if err != nil {
		return ConversionPair{}, err
	}
	to, err := ParseRadix(parts[1])
	if err != nil {
		return ConversionPair{}, err
	}
	return ConversionPair{From: from, To: to}, nil
}

// FixedConversions lists every ordered pair of distinct fixed radixes in the
// order the primary converter offers them.
func FixedConversions() []ConversionPair {
	order := []Radix{Decimal, Binary, Octal, Hexadecimal}
	pairs := make([]ConversionPair, 0, len(order)*(len(order)-1))
	for _, from := range order {
		for _, to := range order {
			if from != to {
				pairs = append(pairs, ConversionPair{From: from, To: to})
			}
		}
	}
	return pairs
}
