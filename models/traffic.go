package models

// Google Directions API shapes, reduced to the fields this service reads.

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type Polyline struct {
	Points string `json:"points"`
}

type Bounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

type DirectionsResponse struct {
	Routes       []Route `json:"routes"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

type Route struct {
	Summary          string   `json:"summary"`
	Legs             []Leg    `json:"legs"`
	OverviewPolyline Polyline `json:"overview_polyline"`
	Bounds           Bounds   `json:"bounds"`
	Warnings         []string `json:"warnings,omitempty"`
}

type Leg struct {
	Distance          TextValue  `json:"distance"`
	Duration          TextValue  `json:"duration"`
	DurationInTraffic *TextValue `json:"duration_in_traffic,omitempty"`
	StartAddress      string     `json:"start_address"`
	EndAddress        string     `json:"end_address"`
	StartLocation     LatLng     `json:"start_location"`
	EndLocation       LatLng     `json:"end_location"`
	Steps             []Step     `json:"steps"`
}

// Step carries the raw HTML instruction from Google and a sanitized copy
// filled in by the server.
type Step struct {
	Distance         TextValue `json:"distance"`
	Duration         TextValue `json:"duration"`
	StartLocation    LatLng    `json:"start_location"`
	EndLocation      LatLng    `json:"end_location"`
	HTMLInstructions string    `json:"html_instructions"`
	Instructions     string    `json:"instructions,omitempty"`
	Polyline         Polyline  `json:"polyline"`
	Maneuver         string    `json:"maneuver,omitempty"`
}
