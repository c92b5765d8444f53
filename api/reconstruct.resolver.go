package api

import (
	"curvelab/internal/factor"
	"curvelab/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type reconstructRequest struct {
	ModelID string `json:"modelId"`
	// TradeDate empty means the latest fitted date.
	TradeDate       string `json:"tradeDate"`
	NComponentsUsed int    `json:"nComponentsUsed"`
}

type instrumentResidualResponse struct {
	InstrumentID     string  `json:"instrumentId"`
	Name             string  `json:"name"`
	Maturity         float64 `json:"maturity"`
	OriginalPct      float64 `json:"originalPct"`
	ReconstructedPct float64 `json:"reconstructedPct"`
	ResidualPct      float64 `json:"residualPct"`
}

type residualStatsResponse struct {
	MeanPct  float64 `json:"meanPct"`
	MaePct   float64 `json:"maePct"`
	RmsePct  float64 `json:"rmsePct"`
	MaxPct   float64 `json:"maxPct"`
	MinPct   float64 `json:"minPct"`
	StdevPct float64 `json:"stdevPct"`
}

type reconstructionResponse struct {
	Date           string                       `json:"date"`
	ComponentsUsed int                          `json:"componentsUsed"`
	GridValuesPct  []float64                    `json:"gridValuesPct"`
	Instruments    []instrumentResidualResponse `json:"instruments"`
	Stats          residualStatsResponse        `json:"stats"`
}

func (m *ApiHandler) reconstruct(c *gin.Context) {
	var requestBody reconstructRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	modelID, err := uuid.Parse(requestBody.ModelID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("bad model id: %w", err), c, 400)
		return
	}

	var rec *factor.Reconstruction
	if requestBody.TradeDate == "" {
		rec, err = m.FactorService.ReconstructLatest(c.Request.Context(), modelID, requestBody.NComponentsUsed)
	} else {
		var tradeDate time.Time
		tradeDate, err = util.ParseDate(requestBody.TradeDate)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		rec, err = m.FactorService.Reconstruct(c.Request.Context(), modelID, tradeDate, requestBody.NComponentsUsed)
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, reconstructionToResponse(rec))
}

type reconstructionReportRequest struct {
	ModelID         string `json:"modelId"`
	NComponentsUsed int    `json:"nComponentsUsed"`
}

// reconstructionReport returns the residual report for every fitted date.
func (m *ApiHandler) reconstructionReport(c *gin.Context) {
	var requestBody reconstructionReportRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	modelID, err := uuid.Parse(requestBody.ModelID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("bad model id: %w", err), c, 400)
		return
	}

	recs, err := m.FactorService.ReconstructAll(c.Request.Context(), modelID, requestBody.NComponentsUsed)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []reconstructionResponse{}
	for _, rec := range recs {
		out = append(out, reconstructionToResponse(rec))
	}

	c.JSON(200, out)
}

func reconstructionToResponse(rec *factor.Reconstruction) reconstructionResponse {
	gridValues := []float64{}
	for _, v := range rec.GridValues {
		gridValues = append(gridValues, v*100)
	}

	instruments := []instrumentResidualResponse{}
	for _, r := range rec.Instruments {
		instruments = append(instruments, instrumentResidualResponse{
			InstrumentID:     r.InstrumentID,
			Name:             r.Name,
			Maturity:         r.Maturity,
			OriginalPct:      r.Original * 100,
			ReconstructedPct: r.Reconstructed * 100,
			ResidualPct:      r.Residual * 100,
		})
	}

	return reconstructionResponse{
		Date:           rec.Date.Format(time.DateOnly),
		ComponentsUsed: rec.ComponentsUsed,
		GridValuesPct:  gridValues,
		Instruments:    instruments,
		Stats: residualStatsResponse{
			MeanPct:  rec.Stats.Mean * 100,
			MaePct:   rec.Stats.MAE * 100,
			RmsePct:  rec.Stats.RMSE * 100,
			MaxPct:   rec.Stats.Max * 100,
			MinPct:   rec.Stats.Min * 100,
			StdevPct: rec.Stats.Stdev * 100,
		},
	}
}
