package api

import (
	"curvelab/internal/calendar"
	"curvelab/internal/curve"
	"curvelab/internal/factor"
	"curvelab/internal/service"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db            *sql.DB
	CurveService  service.CurveService
	FactorService service.FactorService
}

func (m *ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to curvelab"})
	})
	router.POST("/buildCurve", m.buildCurve)
	router.POST("/parRate", m.parRate)
	router.POST("/forwardGrid", m.forwardGrid)
	router.POST("/fitFactorModel", m.fitFactorModel)
	router.POST("/reconstruct", m.reconstruct)
	router.POST("/reconstructionReport", m.reconstructionReport)

	return router
}

func (m *ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// returnErrorJson maps typed domain failures to stable (status, kind) pairs;
// everything else is a 500 internal.
func returnErrorJson(err error, c *gin.Context) {
	fmt.Println(err.Error())

	code := 500
	kind := "internal"

	var scheduleErr *calendar.InvalidScheduleError
	var pricingErr *curve.PricingError
	var samplesErr *factor.InsufficientSamplesError
	switch {
	case errors.Is(err, service.ErrUnknownHandle):
		code, kind = 404, "not_found"
	case errors.Is(err, curve.ErrInsufficientQuotes):
		code, kind = 422, "insufficient_quotes"
	case errors.As(err, &scheduleErr):
		code, kind = 400, "invalid_schedule"
	case errors.As(err, &pricingErr):
		code, kind = 422, "pricing_failure"
	case errors.As(err, &samplesErr):
		code, kind = 422, "insufficient_samples"
	}

	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
		"kind":  kind,
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	fmt.Println(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
		"kind":  "bad_request",
	})
}
