package domain

import (
	"fmt"
	"time"
)

// ConversionRecord captures one successful conversion for a user.
type ConversionRecord struct {
	ID          int64     `json:"id,omitempty"`
	Username    string    `json:"username"`
	InputValue  string    `json:"input_value"`
	InputBase   Radix     `json:"input_base"`
	OutputValue string    `json:"output_value"`
	OutputBase  Radix     `json:"output_base"`
	Timestamp   time.Time `json:"timestamp"`
}

// Pair returns the record's base pair.
func (r ConversionRecord) Pair() ConversionPair {
	return ConversionPair{From: r.InputBase, To: r.OutputBase}
}

// Summary renders the record the way history lists show it.
func (r ConversionRecord) Summary() string {
	return fmt.Sprintf("%s (Base %d) -> %s (Base %d)", r.InputValue, int(r.InputBase), r.OutputValue, int(r.OutputBase))
}

// PairCount is how often a base pair appears in a user's history.
type PairCount struct {
	Pair  ConversionPair
	Count int
}

// HistoryStats summarises a user's conversion history.
type HistoryStats struct {
	Total    int
	TopPairs []PairCount
	Oldest   time.Time
	Newest   time.Time
}
