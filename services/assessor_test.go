package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"accident-risk-api/alcohol"
	"accident-risk-api/models"
	"accident-risk-api/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeather struct {
	weather models.Weather
	err     error
	calls   []models.LatLng
}

func (f *fakeWeather) ByCoords(ctx context.Context, lat, lon float64) (models.Weather, error) {
	f.calls = append(f.calls, models.LatLng{Lat: lat, Lng: lon})
	return f.weather, f.err
}

type fakeRoutes struct {
	analysis models.RouteAnalysis
	err      error
}

func (f *fakeRoutes) Analyze(ctx context.Context, origin, destination string) (models.RouteAnalysis, error) {
	return f.analysis, f.err
}

type fakeLocation struct {
	place models.ReverseGeocode
	err   error
}

func (f *fakeLocation) ReverseGeocode(ctx context.Context, lat, lng float64) (models.ReverseGeocode, error) {
	return f.place, f.err
}

var istanbul = time.FixedZone("TRT", 3*60*60)

func newTestAssessor(t *testing.T, w WeatherProvider, r RouteProvider, l LocationProvider, now time.Time) *Assessor {
	t.Helper()
	table, err := alcohol.LoadDefault()
	require.NoError(t, err)
	a := NewAssessor(risk.New(), table, w, r, l, istanbul, nil)
	a.now = func() time.Time { return now }
	return a
}

func baseRequest() AssessmentRequest {
	return AssessmentRequest{
		DriverFatigue:           risk.FatigueFresh,
		DriverExperience:        risk.ExperienceExperienced,
		SeatbeltUsage:           true,
		VehicleMaintenanceCheck: true,
	}
}

func TestAssessAllFallbacks(t *testing.T) {
	// Wednesday 14:00 local time.
	now := time.Date(2024, 5, 15, 11, 0, 0, 0, time.UTC)
	a := newTestAssessor(t, &fakeWeather{}, &fakeRoutes{}, &fakeLocation{}, now)

	got, err := a.Assess(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{FallbackWeather, FallbackRoute, FallbackLocation}, got.Fallbacks)
	assert.Equal(t, defaultInput().WeatherCondition, got.Input.WeatherCondition)
	assert.Equal(t, risk.RoadArterial, got.Input.RoadType)
	assert.Equal(t, risk.AreaUrban, got.Input.UrbanRural)
	assert.Equal(t, risk.AlcoholNone, got.Input.AlcoholConsumption)
	assert.Equal(t, 14, got.Input.HourOfDay)
	assert.Equal(t, risk.Wednesday, got.Input.DayOfWeek)
	assert.Equal(t, 5, got.Input.Month)
	assert.False(t, got.Input.IsRushHour)
	assert.Nil(t, got.Alcohol)
	assert.Equal(t, risk.New().Predict(got.Input), got.Prediction)
}

func TestAssessWithRoute(t *testing.T) {
	now := time.Date(2024, 5, 15, 5, 30, 0, 0, time.UTC)
	weather := &fakeWeather{weather: models.Weather{Condition: risk.WeatherRain, Temperature: 8, Visibility: 3, WindSpeed: 30, Humidity: 90}}
	routes := &fakeRoutes{analysis: models.RouteAnalysis{
		TrafficDensity:   risk.TrafficHigh,
		AverageSpeed:     35,
		VehicleCount:     300,
		RoadType:         risk.RoadHighway,
		RoadCondition:    risk.RoadExcellent,
		NumberOfLanes:    4,
		SpeedLimit:       120,
		IntersectionType: risk.IntersectionNone,
		UrbanRural:       risk.AreaSuburban,
		SchoolZone:       true,
		Midpoint:         models.LatLng{Lat: 41.1, Lng: 29.1},
	}}
	a := newTestAssessor(t, weather, routes, &fakeLocation{err: errors.New("unused")}, now)

	req := baseRequest()
	req.Origin = "Kadikoy"
	req.Destination = "Kartal"
	got, err := a.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, got.Fallbacks)
	require.Len(t, weather.calls, 1)
	assert.Equal(t, models.LatLng{Lat: 41.1, Lng: 29.1}, weather.calls[0])
	assert.Equal(t, risk.WeatherRain, got.Input.WeatherCondition)
	assert.Equal(t, risk.TrafficHigh, got.Input.TrafficDensity)
	assert.Equal(t, risk.RoadHighway, got.Input.RoadType)
	assert.Equal(t, risk.AreaSuburban, got.Input.UrbanRural)
	assert.True(t, got.Input.SchoolZone)
	assert.Equal(t, 8, got.Input.HourOfDay)
	assert.True(t, got.Input.IsRushHour)
}

func TestAssessRouteFailureSkipsMidpointWeather(t *testing.T) {
	now := time.Date(2024, 5, 15, 11, 0, 0, 0, time.UTC)
	weather := &fakeWeather{}
	a := newTestAssessor(t, weather, &fakeRoutes{err: ErrNoRoute}, &fakeLocation{}, now)

	req := baseRequest()
	req.Origin = "a"
	req.Destination = "b"
	got, err := a.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, weather.calls)
	assert.Equal(t, []string{FallbackWeather, FallbackRoute, FallbackLocation}, got.Fallbacks)
}

func TestAssessWithPointOnly(t *testing.T) {
	now := time.Date(2024, 5, 15, 11, 0, 0, 0, time.UTC)
	weather := &fakeWeather{weather: models.Weather{Condition: risk.WeatherFog, Visibility: 1}}
	location := &fakeLocation{place: models.ReverseGeocode{UrbanRural: risk.AreaRural}}
	a := newTestAssessor(t, weather, &fakeRoutes{}, location, now)

	req := baseRequest()
	req.Location = &models.LatLng{Lat: 39.9, Lng: 32.8}
	got, err := a.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{FallbackRoute}, got.Fallbacks)
	assert.Equal(t, risk.WeatherFog, got.Input.WeatherCondition)
	assert.Equal(t, risk.AreaRural, got.Input.UrbanRural)
}

func TestAssessProviderErrors(t *testing.T) {
	now := time.Date(2024, 5, 15, 11, 0, 0, 0, time.UTC)
	a := newTestAssessor(t,
		&fakeWeather{err: ErrWeatherNotConfigured},
		&fakeRoutes{},
		&fakeLocation{err: ErrUpstreamUnavailable},
		now)

	req := baseRequest()
	req.Location = &models.LatLng{Lat: 39.9, Lng: 32.8}
	got, err := a.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{FallbackWeather, FallbackRoute, FallbackLocation}, got.Fallbacks)
	assert.Equal(t, risk.AreaUrban, got.Input.UrbanRural)
}

func TestAssessAlcoholDetails(t *testing.T) {
	now := time.Date(2024, 5, 15, 11, 0, 0, 0, time.UTC)
	a := newTestAssessor(t, &fakeWeather{}, &fakeRoutes{}, &fakeLocation{}, now)

	req := baseRequest()
	req.AlcoholDetails = "3 bira"
	got, err := a.Assess(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, got.Alcohol)
	assert.Equal(t, got.Alcohol.Level, got.Input.AlcoholConsumption)
	assert.Equal(t, "3 bira", got.Input.AlcoholDetails)

	req.AlcoholConsumption = risk.AlcoholSevere
	got, err = a.Assess(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, got.Alcohol)
	assert.Equal(t, risk.AlcoholSevere, got.Input.AlcoholConsumption)

	req.AlcoholConsumption = ""
	req.AlcoholDetails = "limonata"
	_, err = a.Assess(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlcoholUnknown)
}

func TestResolveAlcoholLargeCounts(t *testing.T) {
	table, err := alcohol.LoadDefault()
	require.NoError(t, err)

	for _, details := range []string{"10 rakı", "6 duble rakı", "8 viski", "10 kokteyl", "12 bira"} {
		t.Run(details, func(t *testing.T) {
			level, drink, err := ResolveAlcohol(table, "", details)
			require.NoError(t, err)
			require.NotNil(t, drink)
			assert.Equal(t, risk.AlcoholSevere, level)
			assert.False(t, drink.LegalPrivate)
		})
	}
}

func TestIsRushHour(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"monday 07:00", time.Date(2024, 5, 13, 7, 0, 0, 0, time.UTC), true},
		{"monday 08:59", time.Date(2024, 5, 13, 8, 59, 0, 0, time.UTC), true},
		{"monday 09:00", time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC), false},
		{"friday 17:30", time.Date(2024, 5, 17, 17, 30, 0, 0, time.UTC), true},
		{"friday 19:00", time.Date(2024, 5, 17, 19, 0, 0, 0, time.UTC), false},
		{"saturday 08:00", time.Date(2024, 5, 18, 8, 0, 0, 0, time.UTC), false},
		{"sunday 18:00", time.Date(2024, 5, 19, 18, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRushHour(tt.t))
		})
	}
}
