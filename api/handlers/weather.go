package handlers

import (
	"context"
	"net/http"
	"time"

	"familykarting/pkg/weather"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WeatherProvider looks up the weather of a day.
type WeatherProvider interface {
	ForDate(ctx context.Context, lat, lon float64, date time.Time) (*weather.Report, error)
}

// Query parameters of a weather lookup.
type WeatherQueryParams struct {
	Lat  *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lon  *float64 `form:"lon" binding:"required,gte=-180,lte=180"`
	Date string   `form:"date" binding:"required,datetime=2006-01-02"`
}

// WeatherHandler looks up weather without storing it.
type WeatherHandler struct {
	Weather WeatherProvider
	Logger  *logrus.Logger
}

type WeatherHandlerDependencies struct {
	Weather WeatherProvider
	Logger  *logrus.Logger
}

// NewWeatherHandler creates a new instance of the weather handler.
func NewWeatherHandler(deps *WeatherHandlerDependencies) *WeatherHandler {
	return &WeatherHandler{
		Weather: deps.Weather,
		Logger:  deps.Logger,
	}
}

// GetWeather returns the weather of a day at the coordinates.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	var qp WeatherQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validated by the binding.
	date, _ := time.Parse("2006-01-02", qp.Date)

	report, err := h.Weather.ForDate(c.Request.Context(), *qp.Lat, *qp.Lon, date)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"weather": report,
		"iconUrl": weather.IconURL(report.Icon),
	}})
}
