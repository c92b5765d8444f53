package api

import (
	"curvelab/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type buildCurveRequest struct {
	Date string `json:"date"`
}

type curveNodeResponse struct {
	Date           string  `json:"date"`
	Tenor          string  `json:"tenor"`
	DiscountFactor float64 `json:"discountFactor"`
	ZeroRatePct    float64 `json:"zeroRatePct"`
}

type buildCurveResponse struct {
	CurveID       string              `json:"curveId"`
	ReferenceDate string              `json:"referenceDate"`
	SpotDate      string              `json:"spotDate"`
	Nodes         []curveNodeResponse `json:"nodes"`
}

func (m *ApiHandler) buildCurve(c *gin.Context) {
	var requestBody buildCurveRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	tradeDate, err := util.ParseDate(requestBody.Date)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result, err := m.CurveService.BuildCurve(c.Request.Context(), tradeDate)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	nodes := []curveNodeResponse{}
	for _, n := range result.Curve.Nodes() {
		nodes = append(nodes, curveNodeResponse{
			Date:           n.Date.Format(time.DateOnly),
			Tenor:          n.Tenor.String(),
			DiscountFactor: n.DiscountFactor,
			ZeroRatePct:    result.Curve.ZeroRate(n.Date) * 100,
		})
	}

	c.JSON(200, buildCurveResponse{
		CurveID:       result.CurveID.String(),
		ReferenceDate: result.Curve.ReferenceDate().Format(time.DateOnly),
		SpotDate:      result.Curve.Spot().Format(time.DateOnly),
		Nodes:         nodes,
	})
}
