package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type TenorUnit string

const (
	TenorDays   TenorUnit = "D"
	TenorWeeks  TenorUnit = "W"
	TenorMonths TenorUnit = "M"
	TenorYears  TenorUnit = "Y"
)

// Tenor is a semantic duration like 6M or 10Y.
type Tenor struct {
	N    int
	Unit TenorUnit
}

func NewTenor(n int, unit TenorUnit) Tenor {
	return Tenor{N: n, Unit: unit}
}

// ParseTenor parses strings like "3M", "10Y", "1W", "30D".
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("invalid tenor %q", s)
	}
	unit := TenorUnit(s[len(s)-1:])
	switch unit {
	case TenorDays, TenorWeeks, TenorMonths, TenorYears:
	default:
		return Tenor{}, fmt.Errorf("unknown tenor unit in %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Tenor{}, fmt.Errorf("invalid tenor %q: %w", s, err)
	}
	return Tenor{N: n, Unit: unit}, nil
}

func (t Tenor) String() string {
	return fmt.Sprintf("%d%s", t.N, t.Unit)
}

// AddTo advances a date by the tenor, calendar-unadjusted.
func (t Tenor) AddTo(d time.Time) time.Time {
	switch t.Unit {
	case TenorDays:
		return d.AddDate(0, 0, t.N)
	case TenorWeeks:
		return d.AddDate(0, 0, 7*t.N)
	case TenorMonths:
		return d.AddDate(0, t.N, 0)
	default:
		return d.AddDate(t.N, 0, 0)
	}
}

// Years returns the approximate length in years, used only for ordering
// and grid axes, never for accrual.
func (t Tenor) Years() float64 {
	switch t.Unit {
	case TenorDays:
		return float64(t.N) / 365.0
	case TenorWeeks:
		return float64(t.N) * 7.0 / 365.0
	case TenorMonths:
		return float64(t.N) / 12.0
	default:
		return float64(t.N)
	}
}
