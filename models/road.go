package models

type SnappedPoint struct {
	Location      RoadsLocation `json:"location"`
	OriginalIndex *int          `json:"originalIndex,omitempty"`
	PlaceID       string        `json:"placeId"`
}

// RoadsLocation uses the Roads API field names.
type RoadsLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SpeedLimit struct {
	PlaceID    string  `json:"placeId"`
	SpeedLimit float64 `json:"speedLimit"`
	Units      string  `json:"units"`
}

type RoadsResult struct {
	SnappedPoints []SnappedPoint `json:"snappedPoints"`
	SpeedLimits   []SpeedLimit   `json:"speedLimits"`
}

type GeocodeResponse struct {
	Results      []GeocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type GeocodeResult struct {
	FormattedAddress  string             `json:"formatted_address"`
	AddressComponents []AddressComponent `json:"address_components"`
	Geometry          struct {
		Location     LatLng `json:"location"`
		LocationType string `json:"location_type"`
		Viewport     Bounds `json:"viewport"`
	} `json:"geometry"`
	PlaceID string   `json:"place_id"`
	Types   []string `json:"types"`
}

type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (a AddressComponent) HasType(t string) bool {
	for _, v := range a.Types {
		if v == t {
			return true
		}
	}
	return false
}

type AutocompleteResponse struct {
	Predictions  []AutocompletePrediction `json:"predictions"`
	Status       string                   `json:"status"`
	ErrorMessage string                   `json:"error_message,omitempty"`
}

type AutocompletePrediction struct {
	Description          string `json:"description"`
	PlaceID              string `json:"place_id"`
	StructuredFormatting struct {
		MainText      string `json:"main_text"`
		SecondaryText string `json:"secondary_text"`
	} `json:"structured_formatting"`
	Types []string `json:"types"`
}

type NearbyResponse struct {
	Results      []NearbyPlace `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type NearbyPlace struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Geometry struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
	Types    []string `json:"types"`
	Vicinity string   `json:"vicinity"`
}
