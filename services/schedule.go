package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchedulePhase is one phase of an installation schedule. Dates always fall
// on business days; phases run back to back.
type SchedulePhase struct {
	Name         string    `json:"name"`
	BusinessDays int       `json:"businessDays"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
}

// GenerateSchedule builds the installation schedule for a proposal starting
// on or after start. Fixed-duration phases cover the pre-install pipeline;
// the structure and panel phases scale with total display area.
func GenerateSchedule(start time.Time, totalArea decimal.Decimal) []SchedulePhase {
	phases := []struct {
		name string
		days int
	}{
		{"Site Survey", 2},
		{"Engineering & Submittals", 10},
		{"Permitting", 15},
		{"Fabrication", 30},
		{"Shipping & Receiving", 7},
		{"Structure Installation", areaDays(totalArea, 400, 3)},
		{"Panel Installation", areaDays(totalArea, 250, 2)},
		{"Power & Data", 4},
		{"Commissioning", 3},
		{"Training & Handoff", 1},
	}

	cursor := nextBusinessDay(start)
	schedule := make([]SchedulePhase, 0, len(phases))
	for _, p := range phases {
		end := addBusinessDays(cursor, p.days-1)
		schedule = append(schedule, SchedulePhase{
			Name:         p.name,
			BusinessDays: p.days,
			StartDate:    cursor,
			EndDate:      end,
		})
		cursor = addBusinessDays(end, 1)
	}
	return schedule
}

// areaDays sizes an install phase: one business day per sqftPerDay of
// display area, with a floor for mobilization.
func areaDays(totalArea decimal.Decimal, sqftPerDay int64, minimum int) int {
	days := int(totalArea.Div(decimal.NewFromInt(sqftPerDay)).Ceil().IntPart())
	if days < minimum {
		return minimum
	}
	return days
}

// nextBusinessDay returns t if it is a weekday, otherwise the following
// Monday.
func nextBusinessDay(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// addBusinessDays advances t by n business days, skipping weekends.
func addBusinessDays(t time.Time, n int) time.Time {
	for i := 0; i < n; i++ {
		t = t.AddDate(0, 0, 1)
		t = nextBusinessDay(t)
	}
	return t
}
