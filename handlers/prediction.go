package handlers

import (
	"net/http"

	"accident-risk-api/alcohol"
	"accident-risk-api/i18n"
	"accident-risk-api/risk"
	"accident-risk-api/services"
	"accident-risk-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictionRequest is the wire form of risk.Input with its range checks.
// When alcohol_consumption is empty, alcohol_details is looked up in the
// drink table.
type PredictionRequest struct {
	WeatherCondition risk.WeatherCondition `json:"weather_condition" binding:"required,oneof=clear cloudy rain fog snow storm"`
	Temperature      float64               `json:"temperature" binding:"gte=-60,lte=60"`
	Visibility       float64               `json:"visibility" binding:"gte=0"`
	WindSpeed        float64               `json:"wind_speed" binding:"gte=0"`
	Humidity         float64               `json:"humidity" binding:"gte=0,lte=100"`

	TrafficDensity risk.TrafficDensity `json:"traffic_density" binding:"required,oneof=low medium high very_high"`
	AverageSpeed   float64             `json:"average_speed" binding:"gte=0"`
	VehicleCount   int                 `json:"vehicle_count" binding:"gte=0"`

	RoadType         risk.RoadType         `json:"road_type" binding:"required,oneof=highway arterial collector local rural"`
	RoadCondition    risk.RoadCondition    `json:"road_condition" binding:"required,oneof=excellent good fair poor"`
	NumberOfLanes    int                   `json:"number_of_lanes" binding:"gte=1"`
	SpeedLimit       float64               `json:"speed_limit" binding:"gte=0"`
	IntersectionType risk.IntersectionType `json:"intersection_type" binding:"required,oneof=none traffic_light stop_sign roundabout yield"`

	HourOfDay  int            `json:"hour_of_day" binding:"gte=0,lte=23"`
	DayOfWeek  risk.DayOfWeek `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Month      int            `json:"month" binding:"gte=1,lte=12"`
	IsHoliday  bool           `json:"is_holiday"`
	IsRushHour bool           `json:"is_rush_hour"`

	UrbanRural       risk.AreaType `json:"urban_rural" binding:"required,oneof=urban suburban rural"`
	SchoolZone       bool          `json:"school_zone"`
	ConstructionZone bool          `json:"construction_zone"`

	AlcoholConsumption      risk.AlcoholLevel `json:"alcohol_consumption" binding:"omitempty,oneof=none light moderate heavy severe"`
	AlcoholDetails          string            `json:"alcohol_details" binding:"max=200"`
	DriverFatigue           risk.Fatigue      `json:"driver_fatigue" binding:"required,oneof=fresh normal tired very_tired"`
	DriverExperience        risk.Experience   `json:"driver_experience" binding:"required,oneof=beginner intermediate experienced professional"`
	SeatbeltUsage           bool              `json:"seatbelt_usage"`
	VehicleMaintenanceCheck bool              `json:"vehicle_maintenance_check"`
}

// Input resolves the alcohol level and returns the engine input.
func (r PredictionRequest) Input(table *alcohol.Table) (risk.Input, *alcohol.Result, error) {
	level, drink, err := services.ResolveAlcohol(table, r.AlcoholConsumption, r.AlcoholDetails)
	if err != nil {
		return risk.Input{}, nil, err
	}
	return risk.Input{
		WeatherCondition:        r.WeatherCondition,
		Temperature:             r.Temperature,
		Visibility:              r.Visibility,
		WindSpeed:               r.WindSpeed,
		Humidity:                r.Humidity,
		TrafficDensity:          r.TrafficDensity,
		AverageSpeed:            r.AverageSpeed,
		VehicleCount:            r.VehicleCount,
		RoadType:                r.RoadType,
		RoadCondition:           r.RoadCondition,
		NumberOfLanes:           r.NumberOfLanes,
		SpeedLimit:              r.SpeedLimit,
		IntersectionType:        r.IntersectionType,
		HourOfDay:               r.HourOfDay,
		DayOfWeek:               r.DayOfWeek,
		Month:                   r.Month,
		IsHoliday:               r.IsHoliday,
		IsRushHour:              r.IsRushHour,
		UrbanRural:              r.UrbanRural,
		SchoolZone:              r.SchoolZone,
		ConstructionZone:        r.ConstructionZone,
		AlcoholConsumption:      level,
		AlcoholDetails:          r.AlcoholDetails,
		DriverFatigue:           r.DriverFatigue,
		DriverExperience:        r.DriverExperience,
		SeatbeltUsage:           r.SeatbeltUsage,
		VehicleMaintenanceCheck: r.VehicleMaintenanceCheck,
	}, drink, nil
}

type PredictionResponse struct {
	Prediction PredictionView  `json:"prediction"`
	Alcohol    *alcohol.Result `json:"alcohol,omitempty"`
}

type PredictionHandler struct {
	engine     *risk.Engine
	table      *alcohol.Table
	translator *i18n.Translator
	log        *zap.Logger
}

func NewPredictionHandler(engine *risk.Engine, table *alcohol.Table, translator *i18n.Translator, log *zap.Logger) *PredictionHandler {
	return &PredictionHandler{engine: engine, table: table, translator: translator, log: log}
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, drink, err := req.Input(h.table)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	pred := h.engine.Predict(in)
	telemetry.ObservePrediction(string(pred.Level), pred.Score)

	c.JSON(http.StatusOK, PredictionResponse{
		Prediction: RenderPrediction(h.translator, requestLanguage(c, h.translator), pred),
		Alcohol:    drink,
	})
}
