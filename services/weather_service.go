package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"accident-risk-api/config"
	"accident-risk-api/models"
	"accident-risk-api/risk"

	"go.uber.org/zap"
)

var ErrWeatherNotConfigured = errors.New("weather provider is not configured")

const (
	weatherService = "openweather"
	weatherBaseURL = "https://api.openweathermap.org/data/2.5"

	// defaultVisibilityKM is used when the provider omits visibility.
	defaultVisibilityKM = 10
)

type openWeatherResponse struct {
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Visibility *float64 `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	DT   int64  `json:"dt"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// WeatherService fetches current conditions from OpenWeatherMap.
type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *CacheService
	ttl     time.Duration
	log     *zap.Logger
}

func NewWeatherService(cfg config.ProvidersConfig, cache *CacheService, log *zap.Logger) *WeatherService {
	if log == nil {
		log = zap.NewNop()
	}
	return &WeatherService{
		apiKey:  cfg.OpenWeatherAPIKey,
		baseURL: orDefault(cfg.OpenWeatherBaseURL, weatherBaseURL),
		client:  newHTTPClient(cfg.Timeout()),
		cache:   cache,
		ttl:     cfg.CacheTTL(),
		log:     log,
	}
}

func (s *WeatherService) Configured() bool {
	return s.apiKey != ""
}

func (s *WeatherService) ByCoords(ctx context.Context, lat, lon float64) (models.Weather, error) {
	if !s.Configured() {
		return models.Weather{}, ErrWeatherNotConfigured
	}
	// Two decimals is roughly a kilometre, close enough to share a reading.
	key := fmt.Sprintf("weather:%.2f,%.2f", lat, lon)
	return cached(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.Weather, error) {
		return s.fetch(ctx, url.Values{
			"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
			"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
		})
	})
}

func (s *WeatherService) ByCity(ctx context.Context, city string) (models.Weather, error) {
	if !s.Configured() {
		return models.Weather{}, ErrWeatherNotConfigured
	}
	city = strings.TrimSpace(city)
	key := "weather:city:" + strings.ToLower(city)
	return cached(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.Weather, error) {
		return s.fetch(ctx, url.Values{"q": {city}})
	})
}

func (s *WeatherService) fetch(ctx context.Context, q url.Values) (models.Weather, error) {
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")

	var raw openWeatherResponse
	if err := fetchJSON(ctx, s.client, weatherService, s.baseURL+"/weather", q, &raw); err != nil {
		s.log.Warn("weather request failed", zap.Error(err))
		return models.Weather{}, err
	}
	return convertWeather(raw, time.Now()), nil
}

func convertWeather(raw openWeatherResponse, now time.Time) models.Weather {
	w := models.Weather{
		Temperature: math.Round(raw.Main.Temp),
		Humidity:    raw.Main.Humidity,
		Visibility:  defaultVisibilityKM,
		WindSpeed:   math.Round(raw.Wind.Speed * 3.6),
		Condition:   risk.WeatherClear,
		Location:    raw.Name,
		ObservedAt:  now.UTC(),
	}
	if raw.Visibility != nil && *raw.Visibility > 0 {
		w.Visibility = math.Round(*raw.Visibility / 1000)
	}
	if len(raw.Weather) > 0 {
		w.Condition = mapWeatherCondition(raw.Weather[0].Main, raw.Weather[0].ID)
	}
	if raw.Sys.Country != "" {
		w.Location = raw.Name + ", " + raw.Sys.Country
	}
	if raw.DT > 0 {
		w.ObservedAt = time.Unix(raw.DT, 0).UTC()
	}
	return w
}

// mapWeatherCondition folds OpenWeatherMap's groups into the six
// conditions the engine scores, falling back to the condition id ranges.
func mapWeatherCondition(main string, id int) risk.WeatherCondition {
	switch strings.ToLower(main) {
	case "clear":
		return risk.WeatherClear
	case "clouds":
		return risk.WeatherCloudy
	case "rain", "drizzle":
		return risk.WeatherRain
	case "snow":
		return risk.WeatherSnow
	case "mist", "fog", "haze":
		return risk.WeatherFog
	case "thunderstorm":
		return risk.WeatherStorm
	}

	switch {
	case id >= 200 && id < 300:
		return risk.WeatherStorm
	case id >= 300 && id < 400, id >= 500 && id < 600:
		return risk.WeatherRain
	case id >= 600 && id < 700:
		return risk.WeatherSnow
	case id >= 700 && id < 800:
		return risk.WeatherFog
	case id == 800:
		return risk.WeatherClear
	case id > 800:
		return risk.WeatherCloudy
	default:
		return risk.WeatherClear
	}
}
