package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"curvelab/internal/calendar"
	"curvelab/internal/domain"

	"gonum.org/v1/gonum/interp"
)

// ErrInsufficientQuotes is returned when fewer than two distinct-tenor quotes
// are supplied to Build.
var ErrInsufficientQuotes = errors.New("need at least 2 distinct-tenor quotes to bootstrap a curve")

type node struct {
	date  time.Time
	t     float64 // year fraction from spot
	df    float64
	quote domain.MarketQuote
}

// DiscountCurve maps dates to discount factors. It is immutable once built
// and safe to share across goroutines; build it once per evaluation date and
// reuse it for every downstream solve.
type DiscountCurve struct {
	referenceDate time.Time
	spot          time.Time
	dayCount      domain.DayCount
	cal           calendar.Calendar

	nodes []node

	// natural cubic spline over (t, log df), anchored at (0, 0)
	logDF interp.NaturalCubic
	lastT float64
	// instantaneous forward at the last node, used for flat extrapolation
	lastFwd float64
}

// Build bootstraps a discount curve from overnight-index-swap par quotes.
// The curve is anchored at referenceDate advanced by settlementLag business
// days; each quote becomes a node at spot+tenor, adjusted modified-following.
func Build(
	referenceDate time.Time,
	settlementLag int,
	quotes []domain.MarketQuote,
	dayCount domain.DayCount,
	cal calendar.Calendar,
) (*DiscountCurve, error) {
	seen := map[string]struct{}{}
	for _, q := range quotes {
		key := q.Tenor.String()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate tenor %s in quote set", key)
		}
		seen[key] = struct{}{}
	}
	if len(quotes) < 2 {
		return nil, ErrInsufficientQuotes
	}

	spot := cal.AddBusinessDays(referenceDate, settlementLag)

	c := &DiscountCurve{
		referenceDate: referenceDate,
		spot:          spot,
		dayCount:      dayCount,
		cal:           cal,
	}

	nodes := make([]node, 0, len(quotes))
	for _, q := range quotes {
		maturity := cal.Adjust(q.Tenor.AddTo(spot), calendar.ModifiedFollowing)
		nodes = append(nodes, node{
			date:  maturity,
			t:     dayCount.YearFraction(spot, maturity),
			quote: q,
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].t < nodes[j].t })
	for i := 1; i < len(nodes); i++ {
		if nodes[i].t <= nodes[i-1].t {
			return nil, fmt.Errorf("quote tenors %s and %s resolve to non-increasing node dates",
				nodes[i-1].quote.Tenor, nodes[i].quote.Tenor)
		}
	}
	c.nodes = nodes

	if err := c.bootstrap(); err != nil {
		return nil, err
	}
	if err := c.fitSpline(); err != nil {
		return nil, err
	}
	return c, nil
}

// bootstrap solves node discount factors sequentially: each quote's OIS must
// reprice to par given all earlier nodes. Coupon dates inside the unsolved
// span interpolate log-linearly against the unknown node value, so the par
// equation stays one-dimensional and Newton converges in a few steps.
func (c *DiscountCurve) bootstrap() error {
	for i := range c.nodes {
		n := &c.nodes[i]
		coupons, err := c.fixedCoupons(n.date)
		if err != nil {
			return fmt.Errorf("bootstrap %s node: %w", n.quote.Tenor, err)
		}
		df, err := c.solveNodeDF(i, coupons, n.quote.Rate)
		if err != nil {
			return fmt.Errorf("bootstrap %s node: %w", n.quote.Tenor, err)
		}
		n.df = df
	}
	return nil
}

type fixedCoupon struct {
	payment time.Time
	accrual float64
}

// fixedCoupons generates the annual fixed leg of the calibrating OIS from
// spot to maturity, accruing on the curve day count (TONA convention).
func (c *DiscountCurve) fixedCoupons(maturity time.Time) ([]fixedCoupon, error) {
	if !maturity.After(c.spot) {
		return nil, fmt.Errorf("node maturity %s not after spot %s",
			maturity.Format(time.DateOnly), c.spot.Format(time.DateOnly))
	}
	schedule, err := calendar.GenerateSchedule(
		c.spot, maturity, domain.FrequencyAnnual, c.cal, calendar.ModifiedFollowing)
	if err != nil {
		return nil, err
	}
	coupons := make([]fixedCoupon, 0, len(schedule))
	for _, p := range schedule {
		coupons = append(coupons, fixedCoupon{
			payment: p.Payment,
			accrual: c.dayCount.YearFraction(p.AccrualStart, p.AccrualEnd),
		})
	}
	return coupons, nil
}

// solveNodeDF finds DF at node i such that
//
//	1 = parRate * sum(accrual_j * DF(pay_j)) + DF(maturity)
//
// using Newton-Raphson. DFs at coupon dates on or before the previous node
// come from the already-solved curve; later ones interpolate log-linearly
// between the previous node and the unknown.
func (c *DiscountCurve) solveNodeDF(i int, coupons []fixedCoupon, parRate float64) (float64, error) {
	var (
		prevDate = c.spot
		prevT    = 0.0
		prevDF   = 1.0
	)
	if i > 0 {
		prevDate = c.nodes[i-1].date
		prevT = c.nodes[i-1].t
		prevDF = c.nodes[i-1].df
	}
	maturityT := c.nodes[i].t

	guess := prevDF
	const tolerance = 1e-13
	for iter := 0; iter < 50; iter++ {
		pvFixed := 0.0
		derivative := 0.0
		for _, cpn := range coupons {
			var d, dPrime float64
			if !cpn.payment.After(prevDate) {
				d = c.solvedDF(i, cpn.payment)
			} else {
				ratio := (c.dayCount.YearFraction(c.spot, cpn.payment) - prevT) / (maturityT - prevT)
				d = math.Pow(prevDF, 1-ratio) * math.Pow(guess, ratio)
				dPrime = ratio * d / guess
			}
			pvFixed += d * cpn.accrual * parRate
			derivative += dPrime * cpn.accrual * parRate
		}

		fVal := pvFixed + guess - 1.0
		fPrime := derivative + 1.0
		if math.Abs(fVal) < tolerance {
			break
		}
		if math.Abs(fPrime) < 1e-15 {
			return 0, fmt.Errorf("degenerate par equation at node %d", i)
		}
		guess -= fVal / fPrime
		if guess <= 0 || math.IsNaN(guess) {
			return 0, fmt.Errorf("bootstrap diverged at node %d (df=%v)", i, guess)
		}
	}
	return guess, nil
}

// solvedDF interpolates log-linearly among nodes 0..i-1 (and spot).
func (c *DiscountCurve) solvedDF(i int, date time.Time) float64 {
	t := c.dayCount.YearFraction(c.spot, date)
	if t <= 0 {
		return 1.0
	}
	t1, df1 := 0.0, 1.0
	for j := 0; j < i; j++ {
		if c.nodes[j].t >= t {
			t2, df2 := c.nodes[j].t, c.nodes[j].df
			fwd := math.Log(df1/df2) / (t2 - t1)
			return df1 * math.Exp(-fwd*(t-t1))
		}
		t1, df1 = c.nodes[j].t, c.nodes[j].df
	}
	// past the last solved node; callers only hit this within one coupon
	// period, extend the last forward flat
	if i >= 2 {
		a, b := c.nodes[i-2], c.nodes[i-1]
		fwd := math.Log(a.df/b.df) / (b.t - a.t)
		return b.df * math.Exp(-fwd*(t-b.t))
	}
	return df1
}

func (c *DiscountCurve) fitSpline() error {
	xs := make([]float64, 0, len(c.nodes)+1)
	ys := make([]float64, 0, len(c.nodes)+1)
	xs = append(xs, 0)
	ys = append(ys, 0)
	for _, n := range c.nodes {
		xs = append(xs, n.t)
		ys = append(ys, math.Log(n.df))
	}
	if err := c.logDF.Fit(xs, ys); err != nil {
		return fmt.Errorf("failed to fit log-discount spline: %w", err)
	}
	c.lastT = xs[len(xs)-1]
	c.lastFwd = -c.logDF.PredictDerivative(c.lastT)
	return nil
}

// ReferenceDate returns the evaluation date the curve was built for.
func (c *DiscountCurve) ReferenceDate() time.Time { return c.referenceDate }

// Spot returns the curve anchor (reference date + settlement lag).
func (c *DiscountCurve) Spot() time.Time { return c.spot }

// DayCount returns the curve's time-axis day count.
func (c *DiscountCurve) DayCount() domain.DayCount { return c.dayCount }

// Calendar returns the business-day calendar the curve was built with.
func (c *DiscountCurve) Calendar() calendar.Calendar { return c.cal }

// Nodes returns the bootstrapped (date, discount factor) pillars.
func (c *DiscountCurve) Nodes() []CurveNode {
	out := make([]CurveNode, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = CurveNode{Date: n.date, Tenor: n.quote.Tenor, DiscountFactor: n.df}
	}
	return out
}

// CurveNode is one bootstrapped pillar.
type CurveNode struct {
	Date           time.Time
	Tenor          domain.Tenor
	DiscountFactor float64
}

// DiscountFactor evaluates the curve at a date. Dates at or before the spot
// anchor return exactly 1; dates beyond the last node extrapolate with a flat
// instantaneous forward.
func (c *DiscountCurve) DiscountFactor(date time.Time) float64 {
	t := c.dayCount.YearFraction(c.spot, date)
	return c.discountFactorAt(t)
}

func (c *DiscountCurve) discountFactorAt(t float64) float64 {
	if t <= 0 {
		return 1.0
	}
	if t > c.lastT {
		endDF := math.Exp(c.logDF.Predict(c.lastT))
		return endDF * math.Exp(-c.lastFwd*(t-c.lastT))
	}
	return math.Exp(c.logDF.Predict(t))
}

// ZeroRate returns the continuously-compounded zero rate to a date, as a
// decimal.
func (c *DiscountCurve) ZeroRate(date time.Time) float64 {
	t := c.dayCount.YearFraction(c.spot, date)
	if t <= 0 {
		return 0
	}
	return -math.Log(c.discountFactorAt(t)) / t
}
