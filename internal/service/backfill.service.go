package service

import (
	"context"
	"curvelab/internal/logger"
	"curvelab/internal/repository"
	"curvelab/internal/util"
	"database/sql"
	"fmt"
	"runtime"
	"time"
)

type BackfillResult struct {
	DatesProcessed int
	DatesFailed    int
}

// BackfillService recomputes matched-maturity swap rates over a historical
// date range, one independent curve per trade date.
type BackfillService interface {
	Run(ctx context.Context, start, end time.Time) (*BackfillResult, error)
}

func NewBackfillService(
	db *sql.DB,
	marketRateRepository repository.MarketRateRepository,
	curveService CurveService,
) BackfillService {
	return &backfillServiceHandler{
		Db:                   db,
		MarketRateRepository: marketRateRepository,
		CurveService:         curveService,
	}
}

type backfillServiceHandler struct {
	Db                   *sql.DB
	MarketRateRepository repository.MarketRateRepository
	CurveService         CurveService
}

func (h *backfillServiceHandler) Run(ctx context.Context, start, end time.Time) (*BackfillResult, error) {
	log := logger.FromContext(ctx)

	if !util.DateLte(start, end) {
		return nil, fmt.Errorf("start date %s is after end date %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	tx, err := h.Db.Begin()
	if err != nil {
		return nil, err
	}
	dates, err := h.MarketRateRepository.ListTradeDates(tx, ProductTypeOIS, start, end)
	tx.Rollback()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no %s quotes between %s and %s", ProductTypeOIS, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	inputCh := make(chan time.Time, len(dates))
	resultCh := make(chan error, len(dates))
	for _, d := range dates {
		inputCh <- d
	}
	close(inputCh)

	numGoroutines := runtime.GOMAXPROCS(0)
	if len(dates) < numGoroutines {
		numGoroutines = len(dates)
	}
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-inputCh:
					if !ok {
						return
					}
					_, err := h.CurveService.MatchedMaturityRates(ctx, d)
					if err != nil {
						err = fmt.Errorf("backfill failed on %s: %w", d.Format(time.DateOnly), err)
					}
					resultCh <- err
				}
			}
		}()
	}

	out := &BackfillResult{}
	for range dates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-resultCh:
			if err != nil {
				// one bad day should not sink the range
				log.Warn(err)
				out.DatesFailed++
				continue
			}
			out.DatesProcessed++
		}
	}

	return out, nil
}
