package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accident-risk-api/alcohol"
	"accident-risk-api/models"
	"accident-risk-api/risk"
	"accident-risk-api/telemetry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrAlcoholUnknown = errors.New("alcohol details not recognized")

const (
	FallbackWeather  = "weather"
	FallbackRoute    = "route"
	FallbackLocation = "location"
)

type WeatherProvider interface {
	ByCoords(ctx context.Context, lat, lon float64) (models.Weather, error)
}

type RouteProvider interface {
	Analyze(ctx context.Context, origin, destination string) (models.RouteAnalysis, error)
}

type LocationProvider interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (models.ReverseGeocode, error)
}

// AssessmentRequest carries what a driver answers in the app. Location and
// the route endpoints are optional; whatever is missing falls back to
// defaults.
type AssessmentRequest struct {
	Location    *models.LatLng `json:"location"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	IsHoliday   bool           `json:"is_holiday"`

	AlcoholConsumption      risk.AlcoholLevel `json:"alcohol_consumption" binding:"omitempty,oneof=none light moderate heavy severe"`
	AlcoholDetails          string            `json:"alcohol_details"`
	DriverFatigue           risk.Fatigue      `json:"driver_fatigue" binding:"required,oneof=fresh normal tired very_tired"`
	DriverExperience        risk.Experience   `json:"driver_experience" binding:"required,oneof=beginner intermediate experienced professional"`
	SeatbeltUsage           bool              `json:"seatbelt_usage"`
	VehicleMaintenanceCheck bool              `json:"vehicle_maintenance_check"`
}

// Assessor gathers provider data for a request and scores it.
type Assessor struct {
	engine   *risk.Engine
	table    *alcohol.Table
	weather  WeatherProvider
	routes   RouteProvider
	location LocationProvider
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewAssessor(engine *risk.Engine, table *alcohol.Table, weather WeatherProvider, routes RouteProvider, location LocationProvider, loc *time.Location, log *zap.Logger) *Assessor {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Assessor{
		engine:   engine,
		table:    table,
		weather:  weather,
		routes:   routes,
		location: location,
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

func (a *Assessor) Assess(ctx context.Context, req AssessmentRequest) (models.Assessment, error) {
	in := defaultInput()
	in.DriverFatigue = req.DriverFatigue
	in.DriverExperience = req.DriverExperience
	in.SeatbeltUsage = req.SeatbeltUsage
	in.VehicleMaintenanceCheck = req.VehicleMaintenanceCheck
	in.AlcoholDetails = req.AlcoholDetails
	in.IsHoliday = req.IsHoliday

	level, drink, err := ResolveAlcohol(a.table, req.AlcoholConsumption, req.AlcoholDetails)
	if err != nil {
		return models.Assessment{}, err
	}
	in.AlcoholConsumption = level

	now := a.now().In(a.loc)
	applyClock(&in, now)

	var (
		weather    *models.Weather
		route      *models.RouteAnalysis
		area       *models.ReverseGeocode
		hasRoute   = req.Origin != "" && req.Destination != ""
		hasPoint   = req.Location != nil
		routeReady = make(chan struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(routeReady)
		if !hasRoute || a.routes == nil {
			return nil
		}
		r, err := a.routes.Analyze(gctx, req.Origin, req.Destination)
		if err != nil {
			a.log.Warn("route analysis failed, using defaults", zap.Error(err))
			return nil
		}
		route = &r
		return nil
	})
	g.Go(func() error {
		if a.weather == nil {
			return nil
		}
		var point models.LatLng
		switch {
		case hasPoint:
			point = *req.Location
		case hasRoute:
			<-routeReady
			if route == nil {
				return nil
			}
			point = route.Midpoint
		default:
			return nil
		}
		w, err := a.weather.ByCoords(gctx, point.Lat, point.Lng)
		if err != nil {
			a.log.Warn("weather lookup failed, using defaults", zap.Error(err))
			return nil
		}
		weather = &w
		return nil
	})
	g.Go(func() error {
		if !hasPoint || a.location == nil {
			return nil
		}
		r, err := a.location.ReverseGeocode(gctx, req.Location.Lat, req.Location.Lng)
		if err != nil {
			a.log.Warn("reverse geocode failed, using defaults", zap.Error(err))
			return nil
		}
		area = &r
		return nil
	})
	_ = g.Wait()

	fallbacks := []string{}
	if weather != nil {
		applyWeather(&in, *weather)
	} else {
		fallbacks = append(fallbacks, FallbackWeather)
	}
	switch {
	case route != nil:
		applyRoute(&in, *route)
	case area != nil:
		in.UrbanRural = area.UrbanRural
		fallbacks = append(fallbacks, FallbackRoute)
	default:
		fallbacks = append(fallbacks, FallbackRoute, FallbackLocation)
	}

	pred := a.engine.Predict(in)
	telemetry.ObservePrediction(string(pred.Level), pred.Score)

	return models.Assessment{
		Input:      in,
		Prediction: pred,
		Alcohol:    drink,
		Fallbacks:  fallbacks,
		AssessedAt: now,
	}, nil
}

// ResolveAlcohol returns the consumption level to score. An explicit level
// wins; otherwise the free-text details are looked up in the drink table and
// the matched entry is returned with the level.
func ResolveAlcohol(table *alcohol.Table, level risk.AlcoholLevel, details string) (risk.AlcoholLevel, *alcohol.Result, error) {
	if level != "" {
		return level, nil, nil
	}
	if strings.TrimSpace(details) == "" {
		return risk.AlcoholNone, nil, nil
	}
	res, ok := table.Search(details)
	telemetry.ObserveAlcoholLookup(ok)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrAlcoholUnknown, details)
	}
	return res.Level, &res, nil
}

// defaultInput holds the values used when a provider has nothing to say.
func defaultInput() risk.Input {
	return risk.Input{
		WeatherCondition: risk.WeatherClear,
		Temperature:      20,
		Visibility:       10,
		WindSpeed:        10,
		Humidity:         50,

		TrafficDensity: risk.TrafficMedium,
		AverageSpeed:   50,
		VehicleCount:   100,

		RoadType:         risk.RoadArterial,
		RoadCondition:    risk.RoadGood,
		NumberOfLanes:    2,
		SpeedLimit:       50,
		IntersectionType: risk.IntersectionTrafficLight,

		UrbanRural: risk.AreaUrban,
	}
}

func applyClock(in *risk.Input, now time.Time) {
	in.HourOfDay = now.Hour()
	in.DayOfWeek = risk.DayOfWeek(strings.ToLower(now.Weekday().String()))
	in.Month = int(now.Month())
	in.IsRushHour = IsRushHour(now)
}

// IsRushHour reports whether t falls in the weekday morning or evening peak.
func IsRushHour(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	h := t.Hour()
	return (h >= 7 && h < 9) || (h >= 17 && h < 19)
}

func applyWeather(in *risk.Input, w models.Weather) {
	in.WeatherCondition = w.Condition
	in.Temperature = w.Temperature
	in.Visibility = w.Visibility
	in.WindSpeed = w.WindSpeed
	in.Humidity = w.Humidity
}

func applyRoute(in *risk.Input, r models.RouteAnalysis) {
	in.TrafficDensity = r.TrafficDensity
	in.AverageSpeed = r.AverageSpeed
	in.VehicleCount = r.VehicleCount
	in.RoadType = r.RoadType
	in.RoadCondition = r.RoadCondition
	in.NumberOfLanes = r.NumberOfLanes
	in.SpeedLimit = r.SpeedLimit
	in.IntersectionType = r.IntersectionType
	in.UrbanRural = r.UrbanRural
	in.SchoolZone = r.SchoolZone
	in.ConstructionZone = r.ConstructionZone
}
