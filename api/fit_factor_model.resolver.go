package api

import (
	"curvelab/internal/service"
	"curvelab/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type fitFactorModelRequest struct {
	EndDate      string    `json:"endDate"`
	LookbackDays int       `json:"lookbackDays"`
	NComponents  int       `json:"nComponents"`
	Grid         []float64 `json:"grid"`
	// ProductType, when set, fits that product's tenor matrix instead of
	// bond yield observations.
	ProductType string `json:"productType"`
}

type fitFactorModelResponse struct {
	ModelID                string    `json:"modelId"`
	NComponents            int       `json:"nComponents"`
	Dates                  []string  `json:"dates"`
	Grid                   []float64 `json:"grid"`
	ExplainedVarianceRatio []float64 `json:"explainedVarianceRatio"`
	CumulativeVariance     float64   `json:"cumulativeVariance"`
}

func (m *ApiHandler) fitFactorModel(c *gin.Context) {
	var requestBody fitFactorModelRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	endDate, err := util.ParseDate(requestBody.EndDate)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result, err := m.FactorService.FitModel(c.Request.Context(), service.FitModelInput{
		EndDate:      endDate,
		LookbackDays: requestBody.LookbackDays,
		NComponents:  requestBody.NComponents,
		TargetGrid:   requestBody.Grid,
		ProductType:  requestBody.ProductType,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	dates := []string{}
	for _, d := range result.Dates {
		dates = append(dates, d.Format(time.DateOnly))
	}

	c.JSON(200, fitFactorModelResponse{
		ModelID:                result.ModelID.String(),
		NComponents:            result.NComponents,
		Dates:                  dates,
		Grid:                   result.Grid,
		ExplainedVarianceRatio: result.ExplainedVarianceRatio,
		CumulativeVariance:     result.CumulativeVariance,
	})
}
