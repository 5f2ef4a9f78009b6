package models

import "accident-risk-api/risk"

// RouteAnalysis is the traffic, road and location part of a risk input
// derived from a driving route.
type RouteAnalysis struct {
	TrafficDensity   risk.TrafficDensity   `json:"traffic_density"`
	AverageSpeed     float64               `json:"average_speed"`
	VehicleCount     int                   `json:"vehicle_count"`
	RoadType         risk.RoadType         `json:"road_type"`
	RoadCondition    risk.RoadCondition    `json:"road_condition"`
	NumberOfLanes    int                   `json:"number_of_lanes"`
	SpeedLimit       float64               `json:"speed_limit"`
	SpeedLimitSource string                `json:"speed_limit_source"`
	IntersectionType risk.IntersectionType `json:"intersection_type"`
	UrbanRural       risk.AreaType         `json:"urban_rural"`
	SchoolZone       bool                  `json:"school_zone"`
	ConstructionZone bool                  `json:"construction_zone"`

	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	Summary         string `json:"summary"`
	Midpoint        LatLng `json:"midpoint"`
}

type ReverseGeocode struct {
	Address    string        `json:"address"`
	UrbanRural risk.AreaType `json:"urban_rural"`
	Components []string      `json:"components,omitempty"`
}
