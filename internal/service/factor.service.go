package service

import (
	"context"
	"curvelab/internal/cache"
	"curvelab/internal/domain"
	"curvelab/internal/factor"
	"curvelab/internal/logger"
	"curvelab/internal/repository"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaturityGrid is the standard tenor grid, in years, that daily
// observations are normalized onto before fitting.
var DefaultMaturityGrid = []float64{1, 2, 3, 4, 5, 7, 10, 15, 20, 30}

type FitModelInput struct {
	EndDate      time.Time
	LookbackDays int
	NComponents  int
	// TargetGrid defaults to DefaultMaturityGrid when empty.
	TargetGrid []float64
	// ProductType switches the observation source: empty fits bond yield
	// observations, a product type fits that product's tenor matrix instead.
	ProductType string
}

type FitModelResult struct {
	ModelID                uuid.UUID
	Dates                  []time.Time
	Grid                   []float64
	ExplainedVarianceRatio []float64
	CumulativeVariance     float64
	NComponents            int
}

// FittedModel pairs the fitted factor model with the per-date source
// observations so residuals can be computed against the originals later.
type FittedModel struct {
	Result *factor.ModelResult
	Daily  map[time.Time][]domain.Observation
}

type FactorService interface {
	FitModel(ctx context.Context, in FitModelInput) (*FitModelResult, error)
	GetModel(modelID uuid.UUID) (*FittedModel, error)
	Reconstruct(ctx context.Context, modelID uuid.UUID, tradeDate time.Time, nComponentsUsed int) (*factor.Reconstruction, error)
	ReconstructAll(ctx context.Context, modelID uuid.UUID, nComponentsUsed int) ([]*factor.Reconstruction, error)
	ReconstructLatest(ctx context.Context, modelID uuid.UUID, nComponentsUsed int) (*factor.Reconstruction, error)
}

func NewFactorService(
	db *sql.DB,
	bondYieldRepository repository.BondYieldRepository,
	marketRateRepository repository.MarketRateRepository,
	results *cache.Results,
) FactorService {
	return &factorServiceHandler{
		Db:                   db,
		BondYieldRepository:  bondYieldRepository,
		MarketRateRepository: marketRateRepository,
		Results:              results,
		registry:             map[uuid.UUID]*FittedModel{},
	}
}

type factorServiceHandler struct {
	Db                   *sql.DB
	BondYieldRepository  repository.BondYieldRepository
	MarketRateRepository repository.MarketRateRepository
	Results              *cache.Results

	registryMu sync.RWMutex
	registry   map[uuid.UUID]*FittedModel
}

func (h *factorServiceHandler) FitModel(ctx context.Context, in FitModelInput) (*FitModelResult, error) {
	if in.LookbackDays <= 0 {
		return nil, fmt.Errorf("lookback days must be positive, got %d", in.LookbackDays)
	}
	grid := in.TargetGrid
	if len(grid) == 0 {
		grid = DefaultMaturityGrid
	}

	start := in.EndDate.AddDate(0, 0, -in.LookbackDays)

	key := cache.Key("factorModel", start.Format(time.DateOnly), in.EndDate.Format(time.DateOnly), in.NComponents, grid, in.ProductType)
	v, err := h.Results.GetOrCompute(key, func() (interface{}, error) {
		return h.fitModel(ctx, start, in.EndDate, in.NComponents, grid, in.ProductType)
	})
	if err != nil {
		return nil, err
	}
	fitted := v.(*FittedModel)

	id := uuid.New()
	h.registryMu.Lock()
	h.registry[id] = fitted
	h.registryMu.Unlock()

	return &FitModelResult{
		ModelID:                id,
		Dates:                  fitted.Result.Dates,
		Grid:                   fitted.Result.Grid,
		ExplainedVarianceRatio: fitted.Result.ExplainedVarianceRatio,
		CumulativeVariance:     fitted.Result.CumulativeVarianceRatio(),
		NComponents:            fitted.Result.NComponents,
	}, nil
}

func (h *factorServiceHandler) fitModel(ctx context.Context, start, end time.Time, nComponents int, grid []float64, productType string) (*FittedModel, error) {
	log := logger.FromContext(ctx)

	tx, err := h.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var daily map[time.Time][]domain.Observation
	if productType == "" {
		daily, err = h.loadYieldObservations(tx, start, end)
	} else {
		daily, err = h.loadTenorMatrix(tx, productType, start, end)
	}
	if err != nil {
		return nil, err
	}

	gm, err := factor.NormalizeGrid(daily, grid)
	if err != nil {
		return nil, err
	}
	if dropped := len(daily) - len(gm.Dates); dropped > 0 {
		log.Infof("dropped %d of %d dates with insufficient grid support", dropped, len(daily))
	}

	result, err := factor.Fit(gm, nComponents)
	if err != nil {
		return nil, err
	}

	return &FittedModel{Result: result, Daily: daily}, nil
}

func (h *factorServiceHandler) loadYieldObservations(tx *sql.Tx, start, end time.Time) (map[time.Time][]domain.Observation, error) {
	dates, err := h.BondYieldRepository.ListTradeDates(tx, start, end)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no yield observations between %s and %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	daily := map[time.Time][]domain.Observation{}
	for _, d := range dates {
		obs, err := h.BondYieldRepository.ListObservations(tx, d)
		if err != nil {
			return nil, err
		}
		daily[d] = obs
	}
	return daily, nil
}

// loadTenorMatrix treats each day's quoted tenor set as the observations.
// When the tenors land on the target grid the normalizer passes them through.
func (h *factorServiceHandler) loadTenorMatrix(tx *sql.Tx, productType string, start, end time.Time) (map[time.Time][]domain.Observation, error) {
	dates, err := h.MarketRateRepository.ListTradeDates(tx, productType, start, end)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no %s quotes between %s and %s", productType, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	daily := map[time.Time][]domain.Observation{}
	for _, d := range dates {
		quotes, err := h.MarketRateRepository.List(tx, productType, d)
		if err != nil {
			return nil, err
		}
		obs := make([]domain.Observation, 0, len(quotes))
		for _, q := range quotes {
			obs = append(obs, domain.Observation{
				InstrumentID: fmt.Sprintf("%s-%s", productType, q.Tenor),
				Name:         q.Tenor.String(),
				Maturity:     q.Tenor.Years(),
				Value:        q.Rate,
			})
		}
		daily[d] = obs
	}
	return daily, nil
}

func (h *factorServiceHandler) GetModel(modelID uuid.UUID) (*FittedModel, error) {
	h.registryMu.RLock()
	m, ok := h.registry[modelID]
	h.registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("model id %s: %w", modelID, ErrUnknownHandle)
	}
	return m, nil
}

func (h *factorServiceHandler) Reconstruct(ctx context.Context, modelID uuid.UUID, tradeDate time.Time, nComponentsUsed int) (*factor.Reconstruction, error) {
	m, err := h.GetModel(modelID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, d := range m.Result.Dates {
		if d.Equal(tradeDate) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("trade date %s not in fitted model", tradeDate.Format(time.DateOnly))
	}

	return factor.Reconstruct(m.Result, idx, nComponentsUsed, m.Daily[m.Result.Dates[idx]])
}

// ReconstructAll produces the residual report for every fitted date.
func (h *factorServiceHandler) ReconstructAll(ctx context.Context, modelID uuid.UUID, nComponentsUsed int) ([]*factor.Reconstruction, error) {
	m, err := h.GetModel(modelID)
	if err != nil {
		return nil, err
	}

	out := make([]*factor.Reconstruction, 0, len(m.Result.Dates))
	for i, d := range m.Result.Dates {
		rec, err := factor.Reconstruct(m.Result, i, nComponentsUsed, m.Daily[d])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, nil
}

func (h *factorServiceHandler) ReconstructLatest(ctx context.Context, modelID uuid.UUID, nComponentsUsed int) (*factor.Reconstruction, error) {
	m, err := h.GetModel(modelID)
	if err != nil {
		return nil, err
	}

	idx := len(m.Result.Dates) - 1
	return factor.Reconstruct(m.Result, idx, nComponentsUsed, m.Daily[m.Result.Dates[idx]])
}
