package models

import (
	"time"

	"accident-risk-api/alcohol"
	"accident-risk-api/risk"
)

type Weather struct {
	Temperature float64               `json:"temperature"`
	Humidity    float64               `json:"humidity"`
	Visibility  float64               `json:"visibility"`
	WindSpeed   float64               `json:"wind_speed"`
	Condition   risk.WeatherCondition `json:"weather_condition"`
	Location    string                `json:"location"`
	ObservedAt  time.Time             `json:"timestamp"`
}

// Assessment is a prediction together with the input assembled for it.
// Fallbacks names each provider whose data was replaced by defaults.
type Assessment struct {
	Input      risk.Input      `json:"input"`
	Prediction risk.Prediction `json:"prediction"`
	Alcohol    *alcohol.Result `json:"alcohol,omitempty"`
	Fallbacks  []string        `json:"fallbacks"`
	AssessedAt time.Time       `json:"assessed_at"`
}
