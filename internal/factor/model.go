package factor

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// InsufficientSamplesError is returned when a decomposition is requested with
// too few trade-date rows to support the component count.
type InsufficientSamplesError struct {
	Rows       int
	Components int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("factor model needs at least %d trade-date rows for %d components, have %d",
		e.Components+1, e.Components, e.Rows)
}

// ModelResult is an orthogonal linear decomposition of a standardized grid
// matrix. Immutable once produced.
//
// The sign of each component is implementation-defined: the decomposition is
// equally valid with any component negated, so callers must use relative or
// squared quantities, or be otherwise sign-robust.
type ModelResult struct {
	Dates []time.Time
	Grid  []float64

	// Loadings is k x len(Grid), in standardized column space, ordered by
	// descending explained variance.
	Loadings *mat.Dense
	// Scores is len(Dates) x k.
	Scores                 *mat.Dense
	ExplainedVarianceRatio []float64

	// Mean and Scale are the per-column standardization parameters in
	// original units.
	Mean  []float64
	Scale []float64

	NComponents int
}

// Fit standardizes each grid column across trade dates and computes the top
// nComponents principal directions of variance. Deterministic for a fixed
// input matrix.
func Fit(m *GridMatrix, nComponents int) (*ModelResult, error) {
	rows, cols := m.Data.Dims()
	if nComponents <= 0 {
		return nil, fmt.Errorf("component count must be positive, got %d", nComponents)
	}
	if nComponents > cols {
		return nil, fmt.Errorf("component count %d exceeds grid size %d", nComponents, cols)
	}
	if rows < nComponents+1 {
		return nil, &InsufficientSamplesError{Rows: rows, Components: nComponents}
	}

	mean := make([]float64, cols)
	scale := make([]float64, cols)
	standardized := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m.Data)
		mu, sigma := stat.MeanStdDev(col, nil)
		if sigma == 0 || math.IsNaN(sigma) {
			// constant column; keep it centered but unscaled
			sigma = 1
		}
		mean[j] = mu
		scale[j] = sigma
		for i := 0; i < rows; i++ {
			standardized.Set(i, j, (col[i]-mu)/sigma)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(standardized, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors) // cols x min(rows, cols)
	vars := pc.VarsTo(nil)

	var total float64
	for _, v := range vars {
		total += v
	}
	evr := make([]float64, nComponents)
	for i := 0; i < nComponents; i++ {
		if total > 0 {
			evr[i] = vars[i] / total
		}
	}

	loadings := mat.NewDense(nComponents, cols, nil)
	for c := 0; c < nComponents; c++ {
		for j := 0; j < cols; j++ {
			loadings.Set(c, j, vectors.At(j, c))
		}
	}

	scores := mat.NewDense(rows, nComponents, nil)
	var leading mat.Dense
	leading.CloneFrom(vectors.Slice(0, cols, 0, nComponents))
	scores.Mul(standardized, &leading)

	return &ModelResult{
		Dates:                  append([]time.Time(nil), m.Dates...),
		Grid:                   append([]float64(nil), m.Grid...),
		Loadings:               loadings,
		Scores:                 scores,
		ExplainedVarianceRatio: evr,
		Mean:                   mean,
		Scale:                  scale,
		NComponents:            nComponents,
	}, nil
}

// CumulativeVarianceRatio is the total variance share captured by the fitted
// components.
func (m *ModelResult) CumulativeVarianceRatio() float64 {
	var sum float64
	for _, v := range m.ExplainedVarianceRatio {
		sum += v
	}
	return sum
}
