// Package services provides the pricing, audit, and document generation
// logic for LED display sales proposals.
package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical category-total rounding stages. Currency rounding is only
// permitted at these five checkpoints; everything upstream stays at full
// precision so per-line rounding error cannot compound.
const (
	StageSubtotal   = "Subtotal"
	StageBond       = "Bond"
	StageBO         = "B&O"
	StageSalesTax   = "Sales Tax"
	StageFinalTotal = "Final Total"
)

// RoundingModeHalfEven tags every operation logged by this ledger.
const RoundingModeHalfEven = "ROUND_HALF_EVEN"

var canonicalStages = map[string]bool{
	StageSubtotal:   true,
	StageBond:       true,
	StageBO:         true,
	StageSalesTax:   true,
	StageFinalTotal: true,
}

// RoundToCents rounds a monetary value to 2 fractional digits using
// round-half-to-even (banker's rounding). Half-up would drift upward across
// the dozens of category totals in a large proposal; half-even keeps the
// aggregate drift unbiased.
func RoundToCents(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(2)
}

// RoundingOperation is an immutable record of one currency rounding.
// Invariant: Rounded - Input == Delta.
type RoundingOperation struct {
	Stage   string          `json:"stage"`
	Input   decimal.Decimal `json:"input"`
	Rounded decimal.Decimal `json:"rounded"`
	Delta   decimal.Decimal `json:"delta"`
	Mode    string          `json:"roundingMode"`
	At      time.Time       `json:"at"`
}

// RoundingSummary is a pure projection of the operation log.
type RoundingSummary struct {
	Count              int             `json:"count"`
	TotalDrift         decimal.Decimal `json:"totalDrift"`
	MaxAbsDrift        decimal.Decimal `json:"maxAbsDrift"`
	AvgAbsDrift        decimal.Decimal `json:"avgAbsDrift"`
	AllHalfEven        bool            `json:"allHalfEven"`
	OnlyCategoryTotals bool            `json:"onlyCategoryTotals"`
}

// RoundingLedger records every currency rounding performed while pricing one
// proposal. Create one ledger per calculation; sharing an instance across
// unrelated proposals interleaves their operations and corrupts the summary.
type RoundingLedger struct {
	mu  sync.Mutex
	ops []RoundingOperation
}

// NewRoundingLedger returns an empty ledger.
func NewRoundingLedger() *RoundingLedger {
	return &RoundingLedger{}
}

// RoundCategoryTotal rounds value to cents and appends the operation to the
// ledger under the given stage label. The stage is recorded as-is; the
// summary flags non-canonical stages after the fact rather than rejecting
// them here.
func (l *RoundingLedger) RoundCategoryTotal(value decimal.Decimal, stage string) decimal.Decimal {
	rounded := RoundToCents(value)

	l.mu.Lock()
	l.ops = append(l.ops, RoundingOperation{
		Stage:   stage,
		Input:   value,
		Rounded: rounded,
		Delta:   rounded.Sub(value),
		Mode:    RoundingModeHalfEven,
		At:      time.Now(),
	})
	l.mu.Unlock()

	return rounded
}

// Operations returns a copy of the logged operations in insertion order.
func (l *RoundingLedger) Operations() []RoundingOperation {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]RoundingOperation, len(l.ops))
	copy(out, l.ops)
	return out
}

// Summary computes drift statistics over the full operation log. An empty
// ledger yields zeroed drift with AllHalfEven and OnlyCategoryTotals both
// true (vacuously).
func (l *RoundingLedger) Summary() RoundingSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := RoundingSummary{
		Count:              len(l.ops),
		AllHalfEven:        true,
		OnlyCategoryTotals: true,
	}

	for _, op := range l.ops {
		summary.TotalDrift = summary.TotalDrift.Add(op.Delta)
		abs := op.Delta.Abs()
		if abs.GreaterThan(summary.MaxAbsDrift) {
			summary.MaxAbsDrift = abs
		}
		summary.AvgAbsDrift = summary.AvgAbsDrift.Add(abs)
		if op.Mode != RoundingModeHalfEven {
			summary.AllHalfEven = false
		}
		if !canonicalStages[op.Stage] {
			summary.OnlyCategoryTotals = false
		}
	}

	if summary.Count > 0 {
		summary.AvgAbsDrift = summary.AvgAbsDrift.Div(decimal.NewFromInt(int64(summary.Count)))
	}

	return summary
}

// DriftAcceptable reports whether the largest single rounding delta stays
// within threshold.
func (l *RoundingLedger) DriftAcceptable(threshold decimal.Decimal) bool {
	return !l.Summary().MaxAbsDrift.GreaterThan(threshold)
}

// Clear empties the ledger so the instance can be reused for a fresh audit.
func (l *RoundingLedger) Clear() {
	l.mu.Lock()
	l.ops = nil
	l.mu.Unlock()
}
