package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProjectPrice_DivisorModel(t *testing.T) {
	tests := []struct {
		name   string
		cost   string
		margin string
		want   string
	}{
		{"25 percent margin", "10000", "0.25", "13333.33"},
		{"zero margin", "500", "0", "500"},
		{"50 percent margin", "100", "0.5", "200"},
		{"zero cost", "0", "0.3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := ProjectPrice(dec(tt.cost), dec(tt.margin))
			if err != nil {
				t.Fatalf("ProjectPrice error: %v", err)
			}
			if !RoundToCents(price).Equal(dec(tt.want)) {
				t.Errorf("ProjectPrice(%s, %s) = %s, want %s",
					tt.cost, tt.margin, RoundToCents(price), tt.want)
			}
		})
	}
}

// The divisor model must satisfy margin == (price - cost) / price.
func TestProjectPrice_MarginIdentity(t *testing.T) {
	costs := []string{"1", "99.99", "10000", "123456.78"}
	margins := []string{"0", "0.1", "0.25", "0.5", "0.85", "0.999"}
	tolerance := dec("0.000001")

	for _, c := range costs {
		for _, m := range margins {
			cost, margin := dec(c), dec(m)
			price, err := ProjectPrice(cost, margin)
			if err != nil {
				t.Fatalf("ProjectPrice(%s, %s) error: %v", c, m, err)
			}
			if price.IsZero() {
				continue
			}
			implied := price.Sub(cost).Div(price)
			if implied.Sub(margin).Abs().GreaterThan(tolerance) {
				t.Errorf("cost=%s margin=%s: implied margin %s deviates", c, m, implied)
			}
		}
	}
}

func TestProjectPrice_RejectsInvalidMargin(t *testing.T) {
	for _, m := range []string{"-0.01", "1", "1.5", "-1"} {
		if _, err := ProjectPrice(dec("100"), dec(m)); err == nil {
			t.Errorf("margin %s should be rejected", m)
		}
	}
}

func TestMarginDollars(t *testing.T) {
	cost, margin := dec("10000"), dec("0.25")
	profit, err := MarginDollars(cost, margin)
	if err != nil {
		t.Fatalf("MarginDollars error: %v", err)
	}

	price, _ := ProjectPrice(cost, margin)
	if !cost.Add(profit).Equal(price) {
		t.Errorf("cost + profit = %s, want %s", cost.Add(profit), price)
	}
}

func TestValidateMargin_Boundaries(t *testing.T) {
	if err := ValidateMargin(decimal.Zero); err != nil {
		t.Errorf("margin 0 should be valid: %v", err)
	}
	if err := ValidateMargin(dec("0.999")); err != nil {
		t.Errorf("margin 0.999 should be valid: %v", err)
	}
	if err := ValidateMargin(dec("1")); err == nil {
		t.Error("margin 1 should be rejected")
	}
	if err := ValidateMargin(dec("-0.01")); err == nil {
		t.Error("margin -0.01 should be rejected")
	}
}
