package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"accident-risk-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WeatherHandler struct {
	weather *services.WeatherService
	log     *zap.Logger
}

func NewWeatherHandler(weather *services.WeatherService, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, log: log}
}

// Current answers GET /weather?lat=..&lon=.. or GET /weather?city=...
func (h *WeatherHandler) Current(c *gin.Context) {
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		w, err := h.weather.ByCity(c.Request.Context(), city)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, w)
		return
	}

	lat, lon, err := parseCoords(c.Query("lat"), c.Query("lon"))
	if err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.weather.ByCoords(c.Request.Context(), lat, lon)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

var errCoordsRequired = errors.New("lat and lon (or city) are required")

func parseCoords(latStr, lonStr string) (float64, float64, error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, errCoordsRequired
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, errors.New("invalid lat parameter")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, errors.New("invalid lon parameter")
	}
	return lat, lon, nil
}
