package handlers

import (
	"errors"
	"net/http"

	"accident-risk-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto the API's status codes.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var upErr *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrAlcoholUnknown):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &upErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": upErr.Message, "service": upErr.Service, "status": upErr.Status})
	case errors.Is(err, services.ErrNoRoute):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		log.Warn("upstream unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable"})
	case errors.Is(err, services.ErrWeatherNotConfigured), errors.Is(err, services.ErrMapsNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
