package factor

import (
	"fmt"
	"math"
	"time"

	"curvelab/internal/domain"

	"github.com/montanaflynn/stats"
)

// InstrumentResidual compares one original observation against its
// factor-model reconstruction at the nearest grid point.
type InstrumentResidual struct {
	InstrumentID  string
	Name          string
	Maturity      float64
	Original      float64
	Reconstructed float64
	// Residual is original minus reconstructed: positive means the
	// instrument trades above the model curve (cheap in yield terms).
	Residual float64
}

// ResidualStats aggregates the signed residuals of one reconstruction.
type ResidualStats struct {
	Mean  float64
	MAE   float64
	RMSE  float64
	Max   float64
	Min   float64
	Stdev float64
}

// Reconstruction is the result of rebuilding one trade date's curve from a
// truncated set of factor scores. Computed on demand, never persisted.
type Reconstruction struct {
	Date            time.Time
	ComponentsUsed  int
	GridValues      []float64
	Instruments     []InstrumentResidual
	Stats           ResidualStats
}

// Reconstruct rebuilds the grid curve for one fitted trade date from the
// first nComponentsUsed factor scores, un-standardizes it, and maps each
// original observation to its nearest grid point to produce signed residuals.
// nComponentsUsed may be less than the fitted component count (partial
// reconstruction) and zero degenerates to the plain mean curve; it may not
// exceed the fitted count.
func Reconstruct(
	model *ModelResult,
	dateIndex int,
	nComponentsUsed int,
	original []domain.Observation,
) (*Reconstruction, error) {
	if dateIndex < 0 || dateIndex >= len(model.Dates) {
		return nil, fmt.Errorf("date index %d outside fitted range [0, %d)", dateIndex, len(model.Dates))
	}
	if nComponentsUsed < 0 || nComponentsUsed > model.NComponents {
		return nil, fmt.Errorf("components used %d outside [0, %d]", nComponentsUsed, model.NComponents)
	}

	gridValues := make([]float64, len(model.Grid))
	for j := range model.Grid {
		reconStd := 0.0
		for c := 0; c < nComponentsUsed; c++ {
			reconStd += model.Scores.At(dateIndex, c) * model.Loadings.At(c, j)
		}
		gridValues[j] = model.Mean[j] + reconStd*model.Scale[j]
	}

	instruments := make([]InstrumentResidual, 0, len(original))
	residuals := make([]float64, 0, len(original))
	for _, obs := range original {
		idx := nearestGridIndex(model.Grid, obs.Maturity)
		residual := obs.Value - gridValues[idx]
		instruments = append(instruments, InstrumentResidual{
			InstrumentID:  obs.InstrumentID,
			Name:          obs.Name,
			Maturity:      obs.Maturity,
			Original:      obs.Value,
			Reconstructed: gridValues[idx],
			Residual:      residual,
		})
		residuals = append(residuals, residual)
	}

	aggregate, err := residualStats(residuals)
	if err != nil {
		return nil, err
	}

	return &Reconstruction{
		Date:           model.Dates[dateIndex],
		ComponentsUsed: nComponentsUsed,
		GridValues:     gridValues,
		Instruments:    instruments,
		Stats:          aggregate,
	}, nil
}

func nearestGridIndex(grid []float64, maturity float64) int {
	best := 0
	bestDist := math.Abs(grid[0] - maturity)
	for i := 1; i < len(grid); i++ {
		if d := math.Abs(grid[i] - maturity); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func residualStats(residuals []float64) (ResidualStats, error) {
	if len(residuals) == 0 {
		return ResidualStats{}, nil
	}

	abs := make([]float64, len(residuals))
	squares := make([]float64, len(residuals))
	for i, r := range residuals {
		abs[i] = math.Abs(r)
		squares[i] = r * r
	}

	mean, err := stats.Mean(residuals)
	if err != nil {
		return ResidualStats{}, fmt.Errorf("failed to compute residual stats: %w", err)
	}
	mae, _ := stats.Mean(abs)
	mse, _ := stats.Mean(squares)
	maxV, _ := stats.Max(residuals)
	minV, _ := stats.Min(residuals)
	stdev := 0.0
	if len(residuals) > 1 {
		stdev, _ = stats.StandardDeviationSample(residuals)
	}

	return ResidualStats{
		Mean:  mean,
		MAE:   mae,
		RMSE:  math.Sqrt(mse),
		Max:   maxV,
		Min:   minV,
		Stdev: stdev,
	}, nil
}
