package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/projectsail/rainfall-backend/internal/domain"
	"github.com/projectsail/rainfall-backend/internal/http/response"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"github.com/projectsail/rainfall-backend/internal/presentation"
	"github.com/projectsail/rainfall-backend/internal/services"
)

type ForecastHandler struct {
	log             *logger.Logger
	userService     services.UserService
	forecastService services.ForecastService
	chartService    services.ChartService
}

func NewForecastHandler(baseLog *logger.Logger, userService services.UserService, forecastService services.ForecastService, chartService services.ChartService) *ForecastHandler {
	return &ForecastHandler{
		log:             baseLog.With("handler", "ForecastHandler"),
		userService:     userService,
		forecastService: forecastService,
		chartService:    chartService,
	}
}

func (fh *ForecastHandler) PublishDaily(c *gin.Context) {
	fh.publish(c, types.SeriesTypeDaily)
}

func (fh *ForecastHandler) PublishMonthly(c *gin.Context) {
	fh.publish(c, types.SeriesTypeMonthly)
}

func (fh *ForecastHandler) GetDailyChart(c *gin.Context) {
	fh.chart(c, types.SeriesTypeDaily, "7-Day Rainfall Forecast")
}

func (fh *ForecastHandler) GetMonthlyChart(c *gin.Context) {
	fh.chart(c, types.SeriesTypeMonthly, "3-Month Rainfall Forecast")
}

// publish appends one series record. The agent is trusted with content; an
// empty body still succeeds and stores the default sample series.
func (fh *ForecastHandler) publish(c *gin.Context, forecastType string) {
	var points []types.ForecastPoint
	if err := c.ShouldBindJSON(&points); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	record, stored, err := fh.forecastService.Publish(c.Request.Context(), forecastType, points)
	if err != nil {
		response.RespondMappedError(c, "forecast_publish_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"status":      "success",
		"records":     stored,
		"forecast_id": record.ID,
		"created_at":  record.CreatedAt,
	})
}

// chart renders the latest series of the type as a PNG line chart.
func (fh *ForecastHandler) chart(c *gin.Context, forecastType, title string) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	exists, err := fh.userService.Exists(c.Request.Context(), userID)
	if err != nil {
		response.RespondMappedError(c, "user_lookup_failed", err)
		return
	}
	if !exists {
		response.RespondMappedError(c, "user_not_found", fmt.Errorf("user: %w", errs.ErrNotFound))
		return
	}

	record, err := fh.forecastService.GetLatest(c.Request.Context(), forecastType)
	if err != nil {
		response.RespondMappedError(c, "forecast_lookup_failed", err)
		return
	}
	points, err := fh.forecastService.DecodePoints(record)
	if err != nil {
		response.RespondMappedError(c, "forecast_data_corrupted", err)
		return
	}

	labeled := presentation.Label(points, presentation.HorizonFor(forecastType))
	buf, err := fh.chartService.RenderLineChart(labeled, title)
	if err != nil {
		fh.log.Error("Chart rendering failed", "forecast_type", forecastType, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "chart_render_failed", err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
