// Package planner computes Umrah savings plans.
package planner

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for a non-positive horizon or negative amounts.
var ErrInvalidInput = errors.New("planner: invalid input")

// Money is an exact amount in Rupiah.
type Money = decimal.Decimal

// DaysPerMonth is the fixed month length used for the daily figure.
const DaysPerMonth = 30

// SavingsPlan is the result of Plan.
type SavingsPlan struct {
	Target              Money `json:"target"`
	Saved               Money `json:"saved"`
	HorizonMonths       int   `json:"horizon_months"`
	Remaining           Money `json:"remaining"`
	MonthlyContribution Money `json:"monthly_contribution"`
	DailyContribution   Money `json:"daily_contribution"`
}

// Plan computes the contributions needed to close the gap between saved and
// target within horizonMonths. A negative Remaining means the goal is met.
func Plan(target, saved Money, horizonMonths int) (SavingsPlan, error) {
	if horizonMonths <= 0 {
		return SavingsPlan{}, fmt.Errorf("%w: horizon must be positive, got %d months", ErrInvalidInput, horizonMonths)
	}
	if target.IsNegative() {
		return SavingsPlan{}, fmt.Errorf("%w: negative target %s", ErrInvalidInput, target)
	}
	if saved.IsNegative() {
		return SavingsPlan{}, fmt.Errorf("%w: negative saved amount %s", ErrInvalidInput, saved)
	}

	p := SavingsPlan{
		Target:              target,
		Saved:               saved,
		HorizonMonths:       horizonMonths,
		Remaining:           target.Sub(saved),
		MonthlyContribution: decimal.Zero,
		DailyContribution:   decimal.Zero,
	}
	if p.Remaining.IsPositive() {
		p.MonthlyContribution = p.Remaining.Div(decimal.NewFromInt(int64(horizonMonths)))
		p.DailyContribution = p.MonthlyContribution.Div(decimal.NewFromInt(DaysPerMonth))
	}
	return p, nil
}

// GoalMet reports whether nothing remains to be saved.
func (p SavingsPlan) GoalMet() bool {
	return !p.Remaining.IsPositive()
}

// Progress returns saved/target clamped to [0, 1].
func (p SavingsPlan) Progress() float64 {
	if !p.Target.IsPositive() {
		return 1
	}
	f, _ := p.Saved.Div(p.Target).Float64()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ParseMoney parses a plain or digit-grouped Rupiah amount such as
// "35000000", "35.000.000" or "35_000_000".
func ParseMoney(s string) (Money, error) {
	clean := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '.', '_', ' ':
			continue
		case ',':
			clean = append(clean, '.')
		default:
			clean = append(clean, r)
		}
	}
	d, err := decimal.NewFromString(string(clean))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrInvalidInput, s)
	}
	return d, nil
}
