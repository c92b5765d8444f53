package factor

import (
	"fmt"
	"sort"
	"time"

	"curvelab/internal/domain"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMinDistinctMaturities is the fewest distinct observed maturities
	// a trade date needs before its curve can be spline-fitted.
	DefaultMinDistinctMaturities = 3
	// DefaultMinCoverage is the fraction of the target grid a trade date must
	// support from its own observed range.
	DefaultMinCoverage = 0.5
)

// GridMatrix is a dense matrix of curve levels: rows are trade dates in
// chronological order, columns are the shared maturity grid. Built fresh per
// analysis request; never persisted.
type GridMatrix struct {
	Dates []time.Time
	Grid  []float64
	Data  *mat.Dense
}

type gridRow struct {
	date      time.Time
	values    []float64
	supported []bool
}

// NormalizeGrid resamples heterogeneously-observed daily curves onto
// targetGrid using the default quality thresholds.
func NormalizeGrid(daily map[time.Time][]domain.Observation, targetGrid []float64) (*GridMatrix, error) {
	return NormalizeGridWithThresholds(daily, targetGrid, DefaultMinDistinctMaturities, DefaultMinCoverage)
}

// NormalizeGridWithThresholds fits a natural cubic spline through each trade
// date's own (maturity, value) points and evaluates it at every target grid
// point inside that date's observed range. Extrapolating a single day's curve
// is not allowed here: the error would compound across the whole matrix.
// Dates with fewer than minDistinct maturities, or supporting less than
// minCoverage of the grid, are dropped outright. Grid points a surviving date
// cannot support take that column's cross-date mean, so the returned matrix
// has no missing cells.
func NormalizeGridWithThresholds(
	daily map[time.Time][]domain.Observation,
	targetGrid []float64,
	minDistinct int,
	minCoverage float64,
) (*GridMatrix, error) {
	if len(targetGrid) == 0 {
		return nil, fmt.Errorf("empty target grid")
	}
	for i := 1; i < len(targetGrid); i++ {
		if targetGrid[i] <= targetGrid[i-1] {
			return nil, fmt.Errorf("target grid must be strictly increasing")
		}
	}

	dates := make([]time.Time, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]gridRow, 0, len(dates))
	for _, date := range dates {
		maturities, values := dedupByMaturity(daily[date])
		if len(maturities) < minDistinct {
			continue
		}

		var spline interp.NaturalCubic
		if err := spline.Fit(maturities, values); err != nil {
			return nil, fmt.Errorf("spline fit for %s: %w", date.Format(time.DateOnly), err)
		}

		lo, hi := maturities[0], maturities[len(maturities)-1]
		r := gridRow{
			date:      date,
			values:    make([]float64, len(targetGrid)),
			supported: make([]bool, len(targetGrid)),
		}
		covered := 0
		for j, m := range targetGrid {
			if m < lo || m > hi {
				continue
			}
			r.values[j] = spline.Predict(m)
			r.supported[j] = true
			covered++
		}
		if float64(covered) < minCoverage*float64(len(targetGrid)) {
			continue
		}
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no trade date passed the coverage thresholds")
	}

	fillUnsupported(rows, len(targetGrid))

	data := mat.NewDense(len(rows), len(targetGrid), nil)
	outDates := make([]time.Time, len(rows))
	for i, r := range rows {
		outDates[i] = r.date
		data.SetRow(i, r.values)
	}
	return &GridMatrix{Dates: outDates, Grid: targetGrid, Data: data}, nil
}

// fillUnsupported replaces cells outside a date's observed range with the
// column mean over the dates that do support that grid point.
func fillUnsupported(rows []gridRow, cols int) {
	for j := 0; j < cols; j++ {
		var sum float64
		var count int
		for i := range rows {
			if rows[i].supported[j] {
				sum += rows[i].values[j]
				count++
			}
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		for i := range rows {
			if !rows[i].supported[j] {
				rows[i].values[j] = mean
			}
		}
	}
}

// dedupByMaturity sorts observations by maturity and averages repeated
// maturities.
func dedupByMaturity(obs []domain.Observation) ([]float64, []float64) {
	sorted := make([]domain.Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Maturity < sorted[j].Maturity })

	var maturities, values []float64
	i := 0
	for i < len(sorted) {
		j := i
		sum := 0.0
		for j < len(sorted) && sorted[j].Maturity == sorted[i].Maturity {
			sum += sorted[j].Value
			j++
		}
		maturities = append(maturities, sorted[i].Maturity)
		values = append(values, sum/float64(j-i))
		i = j
	}
	return maturities, values
}
