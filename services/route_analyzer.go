package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"accident-risk-api/models"
	"accident-risk-api/risk"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNoRoute = errors.New("no route found")

const (
	schoolSearchRadius = 500
	roadSamplePoints   = 5

	speedLimitEstimated = "estimated"
	speedLimitRoadsAPI  = "roads_api"
)

// RouteAnalyzer turns a driving route into the traffic, road and location
// fields of a risk input.
type RouteAnalyzer struct {
	maps *MapsService
	log  *zap.Logger
}

func NewRouteAnalyzer(maps *MapsService, log *zap.Logger) *RouteAnalyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &RouteAnalyzer{maps: maps, log: log}
}

// Analyze only fails when no route can be found; the school, area and
// speed limit lookups fall back to estimates.
func (a *RouteAnalyzer) Analyze(ctx context.Context, origin, destination string) (models.RouteAnalysis, error) {
	directions, err := a.maps.Directions(ctx, DirectionsQuery{Origin: origin, Destination: destination})
	if err != nil {
		return models.RouteAnalysis{}, err
	}
	if len(directions.Routes) == 0 || len(directions.Routes[0].Legs) == 0 {
		return models.RouteAnalysis{}, ErrNoRoute
	}

	route := directions.Routes[0]
	leg := route.Legs[0]

	out := models.RouteAnalysis{
		DistanceMeters:  leg.Distance.Value,
		DurationSeconds: leg.Duration.Value,
		Summary:         route.Summary,
	}

	trafficSeconds := leg.Duration.Value
	if leg.DurationInTraffic != nil && leg.DurationInTraffic.Value > 0 {
		trafficSeconds = leg.DurationInTraffic.Value
	}
	out.TrafficDensity = densityFromDelay(leg.Duration.Value, trafficSeconds)
	out.VehicleCount = vehicleCountFor(out.TrafficDensity)
	if trafficSeconds > 0 {
		out.AverageSpeed = math.Round((float64(leg.Distance.Value) / 1000) / (float64(trafficSeconds) / 3600))
	}

	out.RoadType = roadTypeFromSummary(route.Summary)
	out.NumberOfLanes = lanesFor(out.RoadType)
	out.SpeedLimit = estimateSpeedLimit(out.RoadType)
	out.SpeedLimitSource = speedLimitEstimated
	out.RoadCondition = risk.RoadGood
	out.IntersectionType = risk.IntersectionTrafficLight
	if out.RoadType == risk.RoadHighway {
		out.RoadCondition = risk.RoadExcellent
		out.IntersectionType = risk.IntersectionNone
	}
	out.UrbanRural = risk.AreaSuburban

	midpoint := models.LatLng{
		Lat: (leg.StartLocation.Lat + leg.EndLocation.Lat) / 2,
		Lng: (leg.StartLocation.Lng + leg.EndLocation.Lng) / 2,
	}
	out.Midpoint = midpoint

	// Each lookup writes only its own fields and swallows its error.
	var g errgroup.Group
	g.Go(func() error {
		schools, err := a.maps.Nearby(ctx, NearbyQuery{Location: midpoint, Radius: schoolSearchRadius, Type: "school"})
		if err != nil {
			a.log.Debug("school lookup failed", zap.Error(err))
			return nil
		}
		out.SchoolZone = len(schools.Results) > 0
		return nil
	})
	g.Go(func() error {
		place, err := a.maps.ReverseGeocode(ctx, midpoint.Lat, midpoint.Lng)
		if err != nil {
			a.log.Debug("area lookup failed", zap.Error(err))
			return nil
		}
		out.UrbanRural = place.UrbanRural
		return nil
	})
	g.Go(func() error {
		path := samplePath(leg.Steps)
		if path == "" {
			return nil
		}
		roads, err := a.maps.Roads(ctx, RoadsQuery{Path: path, Interpolate: true, SpeedLimits: true})
		if err != nil {
			a.log.Debug("speed limit lookup failed", zap.Error(err))
			return nil
		}
		if avg, ok := averageSpeedLimit(roads.SpeedLimits); ok {
			out.SpeedLimit = avg
			out.SpeedLimitSource = speedLimitRoadsAPI
		}
		return nil
	})
	_ = g.Wait()

	return out, nil
}

func densityFromDelay(normalSeconds, trafficSeconds int) risk.TrafficDensity {
	if normalSeconds <= 0 {
		return risk.TrafficMedium
	}
	delay := float64(trafficSeconds-normalSeconds) / float64(normalSeconds) * 100
	switch {
	case delay < 10:
		return risk.TrafficLow
	case delay < 30:
		return risk.TrafficMedium
	case delay < 50:
		return risk.TrafficHigh
	default:
		return risk.TrafficVeryHigh
	}
}

func vehicleCountFor(d risk.TrafficDensity) int {
	switch d {
	case risk.TrafficLow:
		return 50
	case risk.TrafficHigh:
		return 300
	case risk.TrafficVeryHigh:
		return 500
	default:
		return 150
	}
}

func roadTypeFromSummary(summary string) risk.RoadType {
	s := strings.ToLower(summary)
	switch {
	case containsAny(s, "highway", "motorway", "otoyol"):
		return risk.RoadHighway
	case containsAny(s, "arterial", "cadde", "bulvar"):
		return risk.RoadArterial
	case containsAny(s, "rural", "kırsal"):
		return risk.RoadRural
	case containsAny(s, "local", "sokak"):
		return risk.RoadLocal
	default:
		return risk.RoadCollector
	}
}

// estimateSpeedLimit uses typical Turkish limits for the road type.
func estimateSpeedLimit(t risk.RoadType) float64 {
	switch t {
	case risk.RoadHighway:
		return 120
	case risk.RoadArterial:
		return 80
	case risk.RoadLocal:
		return 40
	case risk.RoadRural:
		return 90
	default:
		return 50
	}
}

func lanesFor(t risk.RoadType) int {
	switch t {
	case risk.RoadHighway:
		return 4
	case risk.RoadArterial:
		return 3
	case risk.RoadLocal:
		return 1
	default:
		return 2
	}
}

// samplePath picks about five step start points as a Roads API path.
func samplePath(steps []models.Step) string {
	if len(steps) == 0 {
		return ""
	}
	every := max(1, len(steps)/roadSamplePoints)
	var points []string
	for i := 0; i < len(steps); i += every {
		points = append(points, formatLatLng(steps[i].StartLocation))
	}
	return strings.Join(points, "|")
}

// averageSpeedLimit averages the limits in km/h, converting MPH entries.
func averageSpeedLimit(limits []models.SpeedLimit) (float64, bool) {
	if len(limits) == 0 {
		return 0, false
	}
	var sum float64
	for _, l := range limits {
		v := l.SpeedLimit
		if strings.EqualFold(l.Units, "MPH") {
			v *= 1.609344
		}
		sum += v
	}
	return math.Round(sum / float64(len(limits))), true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
