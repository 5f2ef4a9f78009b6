package handlers

import (
	"errors"
	"net/http"
	"time"

	"accident-risk-api/models"
	"accident-risk-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DirectionsRequest struct {
	Origin        string     `json:"origin" binding:"required"`
	Destination   string     `json:"destination" binding:"required"`
	TravelMode    string     `json:"travel_mode" binding:"omitempty,oneof=DRIVING WALKING BICYCLING TRANSIT driving walking bicycling transit"`
	DepartureTime *time.Time `json:"departure_time"`
}

type GeocodeRequest struct {
	Address string `json:"address"`
	LatLng  string `json:"latlng"`
}

type AutocompleteRequest struct {
	Input    string         `json:"input" binding:"required"`
	Location *models.LatLng `json:"location"`
	Radius   int            `json:"radius" binding:"gte=0"`
}

type NearbyRequest struct {
	Location models.LatLng `json:"location"`
	Radius   int           `json:"radius"`
	Type     string        `json:"type"`
}

type RoadsRequest struct {
	Path               string `json:"path" binding:"required"`
	Interpolate        bool   `json:"interpolate"`
	RequestSpeedLimits bool   `json:"request_speed_limits"`
}

type RouteAnalysisRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// MapsHandler exposes the Google Maps proxies and the route analysis built
// on them.
type MapsHandler struct {
	maps     *services.MapsService
	analyzer *services.RouteAnalyzer
	log      *zap.Logger
}

func NewMapsHandler(maps *services.MapsService, analyzer *services.RouteAnalyzer, log *zap.Logger) *MapsHandler {
	return &MapsHandler{maps: maps, analyzer: analyzer, log: log}
}

func (h *MapsHandler) Directions(c *gin.Context) {
	var req DirectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.maps.Directions(c.Request.Context(), services.DirectionsQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		TravelMode:    req.TravelMode,
		DepartureTime: req.DepartureTime,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MapsHandler) Geocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.maps.Geocode(c.Request.Context(), req.Address, req.LatLng)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MapsHandler) Autocomplete(c *gin.Context) {
	var req AutocompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.maps.Autocomplete(c.Request.Context(), services.AutocompleteQuery{
		Input:    req.Input,
		Location: req.Location,
		Radius:   req.Radius,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MapsHandler) Nearby(c *gin.Context) {
	var req NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.maps.Nearby(c.Request.Context(), services.NearbyQuery{
		Location: req.Location,
		Radius:   req.Radius,
		Type:     req.Type,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MapsHandler) Roads(c *gin.Context) {
	var req RoadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.maps.Roads(c.Request.Context(), services.RoadsQuery{
		Path:        req.Path,
		Interpolate: req.Interpolate,
		SpeedLimits: req.RequestSpeedLimits,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MapsHandler) RouteAnalysis(c *gin.Context) {
	var req RouteAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ReverseGeocode answers GET /location/reverse?lat=..&lng=..
func (h *MapsHandler) ReverseGeocode(c *gin.Context) {
	lat, lng, err := parseCoords(c.Query("lat"), c.Query("lng"))
	if err != nil {
		if errors.Is(err, errCoordsRequired) {
			err = errors.New("lat and lng are required")
		}
		badRequest(c, err)
		return
	}

	place, err := h.maps.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, place)
}
