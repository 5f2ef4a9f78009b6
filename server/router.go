package server

import (
	"context"
	"net/http"
	"time"

	"accident-risk-api/alcohol"
	"accident-risk-api/config"
	"accident-risk-api/handlers"
	"accident-risk-api/i18n"
	"accident-risk-api/middleware"
	"accident-risk-api/risk"
	"accident-risk-api/services"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const serviceName = "accident-risk-api"

// Deps are the services the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Engine     *risk.Engine
	Table      *alcohol.Table
	Translator *i18n.Translator
	Cache      *services.CacheService
	Auth       *services.AuthService
	Weather    *services.WeatherService
	Maps       *services.MapsService
	Analyzer   *services.RouteAnalyzer
	Assessor   *services.Assessor
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if !d.Config.Server.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	limit, err := middleware.RateLimit(d.Config.Server.RateLimit, d.Cache)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(d.Logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(d.Logger, true))
	if d.Config.Tracing.Enabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(middleware.SetupCORS(d.Config.CORS))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		cacheStatus := "disabled"
		if d.Cache.Available() {
			cacheStatus = "UP"
			if err := d.Cache.Ping(ctx); err != nil {
				cacheStatus = "DOWN"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "UP",
			"message":       "Accident Risk API is running",
			"cache":         cacheStatus,
			"weather":       d.Weather.Configured(),
			"maps":          d.Maps.Configured(),
			"alcohol_table": d.Table.Version(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(d.Auth)
	predictionHandler := handlers.NewPredictionHandler(d.Engine, d.Table, d.Translator, d.Logger)
	assessmentHandler := handlers.NewAssessmentHandler(d.Assessor, d.Translator, d.Logger)
	alcoholHandler := handlers.NewAlcoholHandler(d.Table)
	weatherHandler := handlers.NewWeatherHandler(d.Weather, d.Logger)
	mapsHandler := handlers.NewMapsHandler(d.Maps, d.Analyzer, d.Logger)

	api := router.Group("/api/v1")
	api.Use(limit)
	{
		api.POST("/auth/token", authHandler.Token)

		api.POST("/predictions", predictionHandler.Predict)
		api.GET("/predictions/live", handlers.LivePredictions(d.Engine, d.Table, d.Translator, d.Auth, d.Logger))

		api.POST("/alcohol/search", alcoholHandler.Search)
		api.GET("/alcohol/table", alcoholHandler.Table)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireToken(d.Auth))
	{
		protected.POST("/assessments", assessmentHandler.Assess)
		protected.GET("/weather", weatherHandler.Current)

		maps := protected.Group("/maps")
		maps.POST("/directions", mapsHandler.Directions)
		maps.POST("/geocode", mapsHandler.Geocode)
		maps.POST("/places/autocomplete", mapsHandler.Autocomplete)
		maps.POST("/places/nearby", mapsHandler.Nearby)
		maps.POST("/roads", mapsHandler.Roads)
		maps.POST("/route-analysis", mapsHandler.RouteAnalysis)

		protected.GET("/location/reverse", mapsHandler.ReverseGeocode)
	}

	return router, nil
}
