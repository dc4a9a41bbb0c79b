package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRoundToCents_HalfEven(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tie rounds to even below", "0.125", "0.12"},
		{"tie rounds to even above", "0.135", "0.14"},
		{"tie at whole cent", "1.005", "1"},
		{"above half rounds up", "0.126", "0.13"},
		{"below half rounds down", "0.124", "0.12"},
		{"negative tie", "-0.125", "-0.12"},
		{"large value", "13333.333333", "13333.33"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToCents(dec(tt.input))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("RoundToCents(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoundToCents_Idempotent(t *testing.T) {
	for _, s := range []string{"0.12", "10.50", "-3.99", "13333.33", "0"} {
		once := RoundToCents(dec(s))
		twice := RoundToCents(once)
		if !once.Equal(twice) {
			t.Errorf("RoundToCents not idempotent for %s: %s then %s", s, once, twice)
		}
	}
}

func TestRoundCategoryTotal_DeltaInvariant(t *testing.T) {
	ledger := NewRoundingLedger()
	inputs := []string{"100.125", "250.333", "0.005", "99.999", "-12.345"}
	for _, s := range inputs {
		ledger.RoundCategoryTotal(dec(s), StageSubtotal)
	}

	for i, op := range ledger.Operations() {
		if !op.Rounded.Sub(op.Input).Equal(op.Delta) {
			t.Errorf("op %d: rounded-input = %s, delta = %s",
				i, op.Rounded.Sub(op.Input), op.Delta)
		}
	}
}

func TestSummary_Empty(t *testing.T) {
	ledger := NewRoundingLedger()
	s := ledger.Summary()

	if s.Count != 0 {
		t.Errorf("count = %d, want 0", s.Count)
	}
	if !s.TotalDrift.IsZero() || !s.MaxAbsDrift.IsZero() || !s.AvgAbsDrift.IsZero() {
		t.Errorf("empty ledger should have zero drift, got %+v", s)
	}
	if !s.AllHalfEven {
		t.Error("empty ledger should report AllHalfEven true")
	}
	if !s.OnlyCategoryTotals {
		t.Error("empty ledger should report OnlyCategoryTotals true")
	}
}

func TestSummary_AllHalfEven(t *testing.T) {
	ledger := NewRoundingLedger()
	ledger.RoundCategoryTotal(dec("10.125"), StageSubtotal)
	ledger.RoundCategoryTotal(dec("20.555"), StageBond)
	ledger.RoundCategoryTotal(dec("30.999"), StageFinalTotal)

	if !ledger.Summary().AllHalfEven {
		t.Error("AllHalfEven should hold for ledger-produced operations")
	}
}

func TestSummary_OnlyCategoryTotals(t *testing.T) {
	ledger := NewRoundingLedger()
	for _, stage := range []string{StageSubtotal, StageBond, StageBO, StageSalesTax, StageFinalTotal} {
		ledger.RoundCategoryTotal(dec("10.01"), stage)
	}
	if !ledger.Summary().OnlyCategoryTotals {
		t.Error("canonical stages should keep OnlyCategoryTotals true")
	}

	ledger.RoundCategoryTotal(dec("5.00"), "Line Item 7")
	if ledger.Summary().OnlyCategoryTotals {
		t.Error("non-canonical stage should flip OnlyCategoryTotals false")
	}
}

func TestSummary_DriftStats(t *testing.T) {
	ledger := NewRoundingLedger()
	// 0.125 -> 0.12 (delta -0.005), 0.135 -> 0.14 (delta +0.005)
	ledger.RoundCategoryTotal(dec("0.125"), StageSubtotal)
	ledger.RoundCategoryTotal(dec("0.135"), StageBond)

	s := ledger.Summary()
	if !s.TotalDrift.IsZero() {
		t.Errorf("total drift = %s, want 0", s.TotalDrift)
	}
	if !s.MaxAbsDrift.Equal(dec("0.005")) {
		t.Errorf("max abs drift = %s, want 0.005", s.MaxAbsDrift)
	}
	if !s.AvgAbsDrift.Equal(dec("0.005")) {
		t.Errorf("avg abs drift = %s, want 0.005", s.AvgAbsDrift)
	}
}

func TestDriftAcceptable(t *testing.T) {
	ledger := NewRoundingLedger()
	ledger.RoundCategoryTotal(dec("0.125"), StageSubtotal)

	if !ledger.DriftAcceptable(dec("0.01")) {
		t.Error("drift of 0.005 should be acceptable at threshold 0.01")
	}
	if ledger.DriftAcceptable(dec("0.001")) {
		t.Error("drift of 0.005 should exceed threshold 0.001")
	}
}

func TestClear(t *testing.T) {
	ledger := NewRoundingLedger()
	ledger.RoundCategoryTotal(dec("1.005"), StageSubtotal)
	ledger.Clear()

	if got := ledger.Summary().Count; got != 0 {
		t.Errorf("count after Clear = %d, want 0", got)
	}
	if len(ledger.Operations()) != 0 {
		t.Error("operations should be empty after Clear")
	}
}
