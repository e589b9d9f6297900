package planner

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func rp(n int64) Money { return decimal.NewFromInt(n) }

func TestPlan_DefaultScenario(t *testing.T) {
	p, err := Plan(rp(35_000_000), rp(5_000_000), 12)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !p.Remaining.Equal(rp(30_000_000)) {
		t.Errorf("Remaining = %s, want 30000000", p.Remaining)
	}
	if !p.MonthlyContribution.Equal(rp(2_500_000)) {
		t.Errorf("Monthly = %s, want 2500000", p.MonthlyContribution)
	}
	if got := p.DailyContribution.Round(2).String(); got != "83333.33" {
		t.Errorf("Daily = %s, want 83333.33", got)
	}
	if p.GoalMet() {
		t.Error("GoalMet() = true for unmet goal")
	}
}

func TestPlan_AlreadyMet(t *testing.T) {
	p, err := Plan(rp(10), rp(20), 6)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !p.Remaining.Equal(rp(-10)) {
		t.Errorf("Remaining = %s, want -10", p.Remaining)
	}
	if !p.MonthlyContribution.IsZero() || !p.DailyContribution.IsZero() {
		t.Errorf("contributions = %s/%s, want 0/0", p.MonthlyContribution, p.DailyContribution)
	}
	if !p.GoalMet() {
		t.Error("GoalMet() = false for surplus")
	}
	if p.Progress() != 1 {
		t.Errorf("Progress = %v, want clamped 1", p.Progress())
	}
}

func TestPlan_ExactlyMet(t *testing.T) {
	p, err := Plan(rp(1_000), rp(1_000), 3)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !p.Remaining.IsZero() || !p.MonthlyContribution.IsZero() {
		t.Errorf("got remaining %s monthly %s, want zeros", p.Remaining, p.MonthlyContribution)
	}
}

func TestPlan_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		target Money
		saved  Money
		months int
	}{
		{"zero horizon", rp(100), rp(0), 0},
		{"negative horizon", rp(100), rp(0), -3},
		{"negative target", rp(-1), rp(0), 3},
		{"negative saved", rp(100), rp(-5), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.target, tt.saved, tt.months)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestPlan_Progress(t *testing.T) {
	p, _ := Plan(rp(40), rp(10), 1)
	if p.Progress() != 0.25 {
		t.Errorf("Progress = %v, want 0.25", p.Progress())
	}
	zero, _ := Plan(rp(0), rp(0), 1)
	if zero.Progress() != 1 {
		t.Errorf("Progress with zero target = %v, want 1", zero.Progress())
	}
}

func TestParseMoney(t *testing.T) {
	for in, want := range map[string]int64{
		"35000000":   35_000_000,
		"35.000.000": 35_000_000,
		"35_000_000": 35_000_000,
		" 5 000 ":    5_000,
	} {
		got, err := ParseMoney(in)
		if err != nil {
			t.Errorf("ParseMoney(%q): %v", in, err)
			continue
		}
		if !got.Equal(rp(want)) {
			t.Errorf("ParseMoney(%q) = %s, want %d", in, got, want)
		}
	}

	if _, err := ParseMoney("lots"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseMoney(lots) err = %v, want ErrInvalidInput", err)
	}
}
