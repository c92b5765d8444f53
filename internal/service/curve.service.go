package service

import (
	"context"
	"curvelab/internal/cache"
	"curvelab/internal/calendar"
	"curvelab/internal/curve"
	"curvelab/internal/db/models/postgres/public/model"
	"curvelab/internal/domain"
	"curvelab/internal/logger"
	"curvelab/internal/repository"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	ProductTypeOIS = "OIS"

	// trades settle T+2 on the bundled calendar
	settlementLag = 2

	MetricMatchedMaturitySwapRatePct = "matched_maturity_swap_rate_pct"
)

// ErrUnknownHandle reports a curve or model id that is not in the registry.
var ErrUnknownHandle = errors.New("unknown handle")

type BuildCurveResult struct {
	CurveID uuid.UUID
	Curve   *curve.DiscountCurve
}

type CurveService interface {
	BuildCurve(ctx context.Context, tradeDate time.Time) (*BuildCurveResult, error)
	GetCurve(curveID uuid.UUID) (*curve.DiscountCurve, error)
	ParRate(ctx context.Context, curveID uuid.UUID, spec domain.RateInstrumentSpec) (*float64, error)
	ForwardGrid(ctx context.Context, curveID uuid.UUID, starts []domain.Tenor, tenor domain.Tenor) ([]curve.ForwardPoint, error)
	ZeroGrid(ctx context.Context, curveID uuid.UUID, maturities []domain.Tenor) ([]curve.ZeroPoint, error)
	MatchedMaturityRates(ctx context.Context, tradeDate time.Time) (map[string]*float64, error)
}

func NewCurveService(
	db *sql.DB,
	marketRateRepository repository.MarketRateRepository,
	bondReferenceRepository repository.BondReferenceRepository,
	computedMetricRepository repository.ComputedMetricRepository,
	results *cache.Results,
) CurveService {
	return &curveServiceHandler{
		Db:                       db,
		MarketRateRepository:     marketRateRepository,
		BondReferenceRepository:  bondReferenceRepository,
		ComputedMetricRepository: computedMetricRepository,
		Results:                  results,
		DayCount:                 domain.DayCountAct365,
		Calendar:                 calendar.Japan(),
		registry:                 map[uuid.UUID]*curve.DiscountCurve{},
	}
}

type curveServiceHandler struct {
	Db                       *sql.DB
	MarketRateRepository     repository.MarketRateRepository
	BondReferenceRepository  repository.BondReferenceRepository
	ComputedMetricRepository repository.ComputedMetricRepository
	Results                  *cache.Results
	DayCount                 domain.DayCount
	Calendar                 calendar.Calendar

	registryMu sync.RWMutex
	registry   map[uuid.UUID]*curve.DiscountCurve
}

func (h *curveServiceHandler) BuildCurve(ctx context.Context, tradeDate time.Time) (*BuildCurveResult, error) {
	tx, err := h.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c, err := h.buildCurveForDate(tx, tradeDate)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	h.registryMu.Lock()
	h.registry[id] = c
	h.registryMu.Unlock()

	return &BuildCurveResult{CurveID: id, Curve: c}, nil
}

// buildCurveForDate loads the day's quotes and bootstraps at most once per
// (date, quote set); repeat calls share the cached curve.
func (h *curveServiceHandler) buildCurveForDate(tx *sql.Tx, tradeDate time.Time) (*curve.DiscountCurve, error) {
	quotes, err := h.MarketRateRepository.List(tx, ProductTypeOIS, tradeDate)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no %s quotes on %s: %w", ProductTypeOIS, tradeDate.Format(time.DateOnly), curve.ErrInsufficientQuotes)
	}

	key := cache.Key("curve", tradeDate.Format(time.DateOnly), quotes)
	v, err := h.Results.GetOrCompute(key, func() (interface{}, error) {
		return curve.Build(tradeDate, settlementLag, quotes, h.DayCount, h.Calendar)
	})
	if err != nil {
		return nil, err
	}

	return v.(*curve.DiscountCurve), nil
}

func (h *curveServiceHandler) GetCurve(curveID uuid.UUID) (*curve.DiscountCurve, error) {
	h.registryMu.RLock()
	c, ok := h.registry[curveID]
	h.registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("curve id %s: %w", curveID, ErrUnknownHandle)
	}
	return c, nil
}

// ParRate prices one instrument off an already-built curve. A pricing failure
// on the instrument itself comes back as a nil rate, not an error, so batch
// callers can keep going.
func (h *curveServiceHandler) ParRate(ctx context.Context, curveID uuid.UUID, spec domain.RateInstrumentSpec) (*float64, error) {
	c, err := h.GetCurve(curveID)
	if err != nil {
		return nil, err
	}

	key := cache.Key("parRate", curveID, spec)
	v, err := h.Results.GetOrCompute(key, func() (interface{}, error) {
		return curve.SolveParRate(c, spec)
	})
	if err != nil {
		var pricingErr *curve.PricingError
		if errors.As(err, &pricingErr) {
			logger.FromContext(ctx).Warnf("par rate solve failed for maturity %s: %v", spec.MaturityDate.Format(time.DateOnly), err)
			return nil, nil
		}
		return nil, err
	}

	rate := v.(float64)
	return &rate, nil
}

func (h *curveServiceHandler) ForwardGrid(ctx context.Context, curveID uuid.UUID, starts []domain.Tenor, tenor domain.Tenor) ([]curve.ForwardPoint, error) {
	c, err := h.GetCurve(curveID)
	if err != nil {
		return nil, err
	}
	return curve.ForwardCurve(c, starts, tenor), nil
}

func (h *curveServiceHandler) ZeroGrid(ctx context.Context, curveID uuid.UUID, maturities []domain.Tenor) ([]curve.ZeroPoint, error) {
	c, err := h.GetCurve(curveID)
	if err != nil {
		return nil, err
	}
	return curve.SpotZeroCurve(c, maturities), nil
}

type mmsWorkResult struct {
	instrumentID string
	rate         *float64
}

// MatchedMaturityRates solves, for every bond on file, the par swap rate to
// the bond's exact maturity off the trade date's curve, and upserts the
// results. Bonds that fail to price map to nil and are not persisted.
func (h *curveServiceHandler) MatchedMaturityRates(ctx context.Context, tradeDate time.Time) (map[string]*float64, error) {
	log := logger.FromContext(ctx)

	tx, err := h.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c, err := h.buildCurveForDate(tx, tradeDate)
	if err != nil {
		return nil, err
	}

	bonds, err := h.BondReferenceRepository.List(tx)
	if err != nil {
		return nil, err
	}

	inputCh := make(chan model.BondReference, len(bonds))
	resultCh := make(chan mmsWorkResult, len(bonds))
	for _, b := range bonds {
		inputCh <- b
	}
	close(inputCh)

	numGoroutines := 10
	if len(bonds) < numGoroutines {
		numGoroutines = len(bonds)
	}
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for b := range inputCh {
				rate, err := h.matchedMaturityRate(c, b)
				if err != nil {
					log.Warnf("matched-maturity rate failed for %s: %v", b.InstrumentID, err)
					resultCh <- mmsWorkResult{instrumentID: b.InstrumentID}
					continue
				}
				resultCh <- mmsWorkResult{instrumentID: b.InstrumentID, rate: rate}
			}
		}()
	}

	out := map[string]*float64{}
	metrics := []model.ComputedMetric{}
	for range bonds {
		res := <-resultCh
		out[res.instrumentID] = res.rate
		if res.rate != nil {
			metrics = append(metrics, model.ComputedMetric{
				TradeDate:    tradeDate,
				InstrumentID: res.instrumentID,
				Metric:       MetricMatchedMaturitySwapRatePct,
				Value:        *res.rate * 100,
			})
		}
	}

	if len(metrics) > 0 {
		err = h.ComputedMetricRepository.Add(tx, metrics)
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit matched-maturity rates: %w", err)
	}

	return out, nil
}

func (h *curveServiceHandler) matchedMaturityRate(c *curve.DiscountCurve, bond model.BondReference) (*float64, error) {
	freq, err := domain.ParseFrequency(bond.CouponFrequency)
	if err != nil {
		return nil, err
	}
	dayCount, err := domain.ParseDayCount(bond.DayCount)
	if err != nil {
		return nil, err
	}

	rate, err := curve.SolveParRate(c, domain.RateInstrumentSpec{
		StartDate:      c.Spot(),
		MaturityDate:   bond.MaturityDate,
		FixedFrequency: freq,
		FixedDayCount:  dayCount,
	})
	if err != nil {
		return nil, err
	}

	return &rate, nil
}
