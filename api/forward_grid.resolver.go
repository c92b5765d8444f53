package api

import (
	"curvelab/internal/domain"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type forwardGridRequest struct {
	CurveID string   `json:"curveId"`
	Starts  []string `json:"starts"`
	Tenor   string   `json:"tenor"`
}

type forwardPointResponse struct {
	Start   string   `json:"start"`
	RatePct *float64 `json:"ratePct"`
}

func (m *ApiHandler) forwardGrid(c *gin.Context) {
	var requestBody forwardGridRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	curveID, err := uuid.Parse(requestBody.CurveID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("bad curve id: %w", err), c, 400)
		return
	}

	tenor, err := domain.ParseTenor(requestBody.Tenor)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	starts := []domain.Tenor{}
	for _, s := range requestBody.Starts {
		t, err := domain.ParseTenor(s)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		starts = append(starts, t)
	}

	points, err := m.CurveService.ForwardGrid(c.Request.Context(), curveID, starts, tenor)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []forwardPointResponse{}
	for _, p := range points {
		resp := forwardPointResponse{Start: p.Start.String()}
		if p.Rate != nil {
			pct := *p.Rate * 100
			resp.RatePct = &pct
		}
		out = append(out, resp)
	}

	c.JSON(200, out)
}
