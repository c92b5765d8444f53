package api

import (
	"curvelab/internal/domain"
	"curvelab/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type parRateRequest struct {
	CurveID      string `json:"curveId"`
	MaturityDate string `json:"maturityDate"`
	// StartDate defaults to the curve's spot date.
	StartDate string `json:"startDate"`
	Frequency string `json:"frequency"`
	DayCount  string `json:"dayCount"`
	// SpreadPct is a floating-leg spread in percent, e.g. 0.05 for 5bp.
	SpreadPct float64 `json:"spreadPct"`
}

type parRateResponse struct {
	RatePct *float64 `json:"ratePct"`
}

func (m *ApiHandler) parRate(c *gin.Context) {
	var requestBody parRateRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	curveID, err := uuid.Parse(requestBody.CurveID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("bad curve id: %w", err), c, 400)
		return
	}

	maturity, err := util.ParseDate(requestBody.MaturityDate)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	freq, err := domain.ParseFrequency(requestBody.Frequency)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	dayCount, err := domain.ParseDayCount(requestBody.DayCount)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	curveHandle, err := m.CurveService.GetCurve(curveID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	start := curveHandle.Spot()
	if requestBody.StartDate != "" {
		start, err = util.ParseDate(requestBody.StartDate)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
	}

	rate, err := m.CurveService.ParRate(c.Request.Context(), curveID, domain.RateInstrumentSpec{
		StartDate:      start,
		MaturityDate:   maturity,
		FixedFrequency: freq,
		FixedDayCount:  dayCount,
		FloatingSpread: requestBody.SpreadPct / 100,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := parRateResponse{}
	if rate != nil {
		pct := *rate * 100
		out.RatePct = &pct
	}

	c.JSON(200, out)
}
