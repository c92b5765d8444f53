package cmd

import (
	"curvelab/api"
	"curvelab/internal/cache"
	"curvelab/internal/repository"
	"curvelab/internal/service"
	"curvelab/internal/util"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	results := cache.New()

	marketRateRepository := repository.NewMarketRateRepository()
	bondReferenceRepository := repository.NewBondReferenceRepository()
	bondYieldRepository := repository.NewBondYieldRepository()
	computedMetricRepository := repository.NewComputedMetricRepository()

	curveService := service.NewCurveService(
		dbConn,
		marketRateRepository,
		bondReferenceRepository,
		computedMetricRepository,
		results,
	)
	factorService := service.NewFactorService(
		dbConn,
		bondYieldRepository,
		marketRateRepository,
		results,
	)

	return &api.ApiHandler{
		Db:            dbConn,
		CurveService:  curveService,
		FactorService: factorService,
	}, nil
}

// InitializeBackfillService wires the historical recomputation path off the
// same dependency graph the api uses.
func InitializeBackfillService(handler *api.ApiHandler) service.BackfillService {
	return service.NewBackfillService(
		handler.Db,
		repository.NewMarketRateRepository(),
		handler.CurveService,
	)
}
