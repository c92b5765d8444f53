package curve

import (
	"fmt"
	"time"

	"curvelab/internal/calendar"
	"curvelab/internal/domain"
)

// PricingError reports a failure to price one instrument against a curve.
// Batch callers record the instrument as unpriceable and move on; a
// PricingError never aborts the rest of a batch.
type PricingError struct {
	Maturity time.Time
	Err      error
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("pricing instrument maturing %s: %v",
		e.Maturity.Format(time.DateOnly), e.Err)
}

func (e *PricingError) Unwrap() error { return e.Err }

// SolveParRate computes the fixed rate that zeroes the present value of the
// instrument described by spec, priced against c. The payoff is linear in the
// fixed rate, so the rate is the floating-leg PV divided by the fixed-leg
// annuity; no root finding is involved.
//
// An instrument whose maturity is at or before its start is fully expired and
// carries no forward rate: the result is 0, not an error.
func SolveParRate(c *DiscountCurve, spec domain.RateInstrumentSpec) (float64, error) {
	if !spec.MaturityDate.After(spec.StartDate) {
		return 0, nil
	}

	schedule, err := calendar.GenerateSchedule(
		spec.StartDate, spec.MaturityDate, spec.FixedFrequency, c.cal, calendar.ModifiedFollowing)
	if err != nil {
		return 0, &PricingError{Maturity: spec.MaturityDate, Err: err}
	}

	var annuity, floatPV float64
	for _, p := range schedule {
		df := c.DiscountFactor(p.Payment)
		if df <= 0 || df > 1 {
			return 0, &PricingError{
				Maturity: spec.MaturityDate,
				Err:      fmt.Errorf("discount factor %v out of range at %s", df, p.Payment.Format(time.DateOnly)),
			}
		}

		annuity += df * spec.FixedDayCount.YearFraction(p.AccrualStart, p.AccrualEnd)

		// compounded overnight rate over the accrual period, plus spread
		dfStart := c.DiscountFactor(p.AccrualStart)
		dfEnd := c.DiscountFactor(p.AccrualEnd)
		floatAccrual := c.dayCount.YearFraction(p.AccrualStart, p.AccrualEnd)
		floatPV += (dfStart/dfEnd - 1 + spec.FloatingSpread*floatAccrual) * df
	}

	if annuity <= 0 {
		return 0, &PricingError{
			Maturity: spec.MaturityDate,
			Err:      fmt.Errorf("non-positive annuity %v", annuity),
		}
	}
	return floatPV / annuity, nil
}
