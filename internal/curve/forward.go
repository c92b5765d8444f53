package curve

import (
	"curvelab/internal/calendar"
	"curvelab/internal/domain"
)

// ForwardPoint is one forward-starting par rate. Rate is nil when that point
// could not be priced; a single bad point never fails the grid.
type ForwardPoint struct {
	Start domain.Tenor
	Rate  *float64
}

// ZeroPoint is one spot zero rate.
type ZeroPoint struct {
	Maturity domain.Tenor
	Rate     float64
}

// ForwardCurve computes, for each start offset, the par rate of an instrument
// beginning at spot+start with length tenor. The whole grid is priced off the
// one already-built curve; nothing is re-bootstrapped per point.
func ForwardCurve(c *DiscountCurve, starts []domain.Tenor, tenor domain.Tenor) []ForwardPoint {
	out := make([]ForwardPoint, 0, len(starts))
	for _, start := range starts {
		fwdStart := c.cal.Adjust(start.AddTo(c.spot), calendar.ModifiedFollowing)
		maturity := c.cal.Adjust(tenor.AddTo(fwdStart), calendar.ModifiedFollowing)

		rate, err := SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      fwdStart,
			MaturityDate:   maturity,
			FixedFrequency: domain.FrequencyAnnual,
			FixedDayCount:  c.dayCount,
		})
		point := ForwardPoint{Start: start}
		if err == nil {
			point.Rate = &rate
		}
		out = append(out, point)
	}
	return out
}

// SpotZeroCurve returns continuously-compounded zero rates for each maturity
// offset from spot.
func SpotZeroCurve(c *DiscountCurve, maturities []domain.Tenor) []ZeroPoint {
	out := make([]ZeroPoint, 0, len(maturities))
	for _, m := range maturities {
		date := c.cal.Adjust(m.AddTo(c.spot), calendar.ModifiedFollowing)
		out = append(out, ZeroPoint{Maturity: m, Rate: c.ZeroRate(date)})
	}
	return out
}
