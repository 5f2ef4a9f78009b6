package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"accident-risk-api/alcohol"
	"accident-risk-api/config"
	"accident-risk-api/i18n"
	"accident-risk-api/risk"
	"accident-risk-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	table      *alcohol.Table
	translator *i18n.Translator
	auth       *services.AuthService
	engine     *risk.Engine
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	table, err := alcohol.LoadDefault()
	require.NoError(t, err)
	translator, err := i18n.New()
	require.NoError(t, err)
	hash, err := services.HashSecret("mobile-secret")
	require.NoError(t, err)

	return testEnv{
		table:      table,
		translator: translator,
		auth: services.NewAuthService(
			config.JWTConfig{Secret: "handler-test", ExpiryHours: 1},
			config.AuthConfig{Clients: map[string]string{"mobile": hash}},
		),
		engine: risk.New(),
	}
}

func validPrediction() map[string]interface{} {
	return map[string]interface{}{
		"weather_condition":         "clear",
		"temperature":               24,
		"visibility":                15,
		"wind_speed":                10,
		"humidity":                  50,
		"traffic_density":           "low",
		"average_speed":             55,
		"vehicle_count":             80,
		"road_type":                 "arterial",
		"road_condition":            "excellent",
		"number_of_lanes":           2,
		"speed_limit":               65,
		"intersection_type":         "none",
		"hour_of_day":               14,
		"day_of_week":               "wednesday",
		"month":                     6,
		"urban_rural":               "urban",
		"alcohol_consumption":       "none",
		"driver_fatigue":            "fresh",
		"driver_experience":         "experienced",
		"seatbelt_usage":            true,
		"vehicle_maintenance_check": true,
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid request", fmt.Errorf("%w: origin required", services.ErrInvalidRequest), http.StatusBadRequest},
		{"unknown alcohol", services.ErrAlcoholUnknown, http.StatusBadRequest},
		{"upstream status", &services.UpstreamError{Service: "geocode", Status: "INVALID_REQUEST"}, http.StatusBadRequest},
		{"no route", services.ErrNoRoute, http.StatusNotFound},
		{"upstream down", fmt.Errorf("%w: directions", services.ErrUpstreamUnavailable), http.StatusBadGateway},
		{"weather off", services.ErrWeatherNotConfigured, http.StatusServiceUnavailable},
		{"maps off", services.ErrMapsNotConfigured, http.StatusServiceUnavailable},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { respondError(c, zap.NewNop(), tt.err) })

			w := doJSON(t, r, http.MethodGet, "/", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestAuthToken(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.auth)
	r := gin.New()
	r.POST("/token", h.Token)

	w := doJSON(t, r, http.MethodPost, "/token", TokenRequest{ClientID: "mobile", ClientSecret: "mobile-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	claims, err := env.auth.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mobile", claims.ClientID)

	w = doJSON(t, r, http.MethodPost, "/token", TokenRequest{ClientID: "mobile", ClientSecret: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/token", map[string]string{"client_id": "mobile"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
