package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"accident-risk-api/config"
	"accident-risk-api/models"
	"accident-risk-api/risk"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

var (
	ErrMapsNotConfigured = errors.New("maps provider is not configured")
	ErrInvalidRequest    = errors.New("invalid request")
)

const (
	mapsBaseURL  = "https://maps.googleapis.com/maps/api"
	roadsBaseURL = "https://roads.googleapis.com/v1"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	// The speed limits endpoint accepts at most 100 place ids per call.
	maxSpeedLimitPlaces = 100
)

type DirectionsQuery struct {
	Origin        string
	Destination   string
	TravelMode    string
	DepartureTime *time.Time
}

type AutocompleteQuery struct {
	Input    string
	Location *models.LatLng
	Radius   int
}

type NearbyQuery struct {
	Location models.LatLng
	Radius   int
	Type     string
}

type RoadsQuery struct {
	Path        string
	Interpolate bool
	SpeedLimits bool
}

// MapsService proxies the Google Maps web services so the API key stays on
// the server.
type MapsService struct {
	apiKey    string
	baseURL   string
	roadsURL  string
	client    *http.Client
	cache     *CacheService
	ttl       time.Duration
	sanitizer *bluemonday.Policy
	log       *zap.Logger
}

func NewMapsService(cfg config.ProvidersConfig, cache *CacheService, log *zap.Logger) *MapsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MapsService{
		apiKey:    cfg.GoogleMapsAPIKey,
		baseURL:   orDefault(cfg.GoogleMapsBaseURL, mapsBaseURL),
		roadsURL:  orDefault(cfg.GoogleRoadsBaseURL, roadsBaseURL),
		client:    newHTTPClient(cfg.Timeout()),
		cache:     cache,
		ttl:       cfg.CacheTTL(),
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}
}

func (s *MapsService) Configured() bool {
	return s.apiKey != ""
}

func (s *MapsService) Directions(ctx context.Context, q DirectionsQuery) (models.DirectionsResponse, error) {
	var resp models.DirectionsResponse
	if q.Origin == "" || q.Destination == "" {
		return resp, fmt.Errorf("%w: origin and destination are required", ErrInvalidRequest)
	}
	if !s.Configured() {
		return resp, ErrMapsNotConfigured
	}

	mode := strings.ToLower(q.TravelMode)
	if mode == "" {
		mode = "driving"
	}
	departure := "now"
	if q.DepartureTime != nil && q.DepartureTime.After(time.Now()) {
		departure = strconv.FormatInt(q.DepartureTime.Unix(), 10)
	}

	params := s.params(url.Values{
		"origin":         {q.Origin},
		"destination":    {q.Destination},
		"mode":           {mode},
		"departure_time": {departure},
		"traffic_model":  {"best_guess"},
		"alternatives":   {"true"},
	})
	if err := fetchJSON(ctx, s.client, "directions", s.baseURL+"/directions/json", params, &resp); err != nil {
		return resp, err
	}
	if err := checkStatus("directions", resp.Status, resp.ErrorMessage, false); err != nil {
		s.log.Warn("directions rejected", zap.String("status", resp.Status))
		return resp, err
	}

	for r := range resp.Routes {
		for l := range resp.Routes[r].Legs {
			steps := resp.Routes[r].Legs[l].Steps
			for i := range steps {
				steps[i].Instructions = s.plainText(steps[i].HTMLInstructions)
			}
		}
	}
	return resp, nil
}

// Geocode resolves an address, or reverse geocodes a "lat,lng" string when
// address is empty.
func (s *MapsService) Geocode(ctx context.Context, address, latlng string) (models.GeocodeResponse, error) {
	var resp models.GeocodeResponse
	if address == "" && latlng == "" {
		return resp, fmt.Errorf("%w: either address or latlng is required", ErrInvalidRequest)
	}
	if !s.Configured() {
		return resp, ErrMapsNotConfigured
	}

	q := url.Values{}
	cacheKey := "geocode:address:" + strings.ToLower(address)
	if address != "" {
		q.Set("address", address)
	} else {
		q.Set("latlng", latlng)
		cacheKey = "geocode:latlng:" + latlng
	}

	return cached(ctx, s.cache, cacheKey, s.ttl, func(ctx context.Context) (models.GeocodeResponse, error) {
		var resp models.GeocodeResponse
		if err := fetchJSON(ctx, s.client, "geocode", s.baseURL+"/geocode/json", s.params(q), &resp); err != nil {
			return resp, err
		}
		return resp, checkStatus("geocode", resp.Status, resp.ErrorMessage, true)
	})
}

// Autocomplete suggests places in Turkey, optionally biased towards a
// location.
func (s *MapsService) Autocomplete(ctx context.Context, q AutocompleteQuery) (models.AutocompleteResponse, error) {
	var resp models.AutocompleteResponse
	input := strings.TrimSpace(q.Input)
	if input == "" {
		return resp, fmt.Errorf("%w: input is required", ErrInvalidRequest)
	}
	if !s.Configured() {
		return resp, ErrMapsNotConfigured
	}

	params := url.Values{
		"input":      {input},
		"components": {"country:tr"},
	}
	if q.Location != nil && q.Radius > 0 {
		params.Set("location", formatLatLng(*q.Location))
		params.Set("radius", strconv.Itoa(q.Radius))
	}

	if err := fetchJSON(ctx, s.client, "places_autocomplete", s.baseURL+"/place/autocomplete/json", s.params(params), &resp); err != nil {
		return resp, err
	}
	return resp, checkStatus("places_autocomplete", resp.Status, resp.ErrorMessage, true)
}

func (s *MapsService) Nearby(ctx context.Context, q NearbyQuery) (models.NearbyResponse, error) {
	var resp models.NearbyResponse
	if q.Location.Lat == 0 || q.Location.Lng == 0 {
		return resp, fmt.Errorf("%w: location (lat, lng) is required", ErrInvalidRequest)
	}
	if q.Radius <= 0 {
		return resp, fmt.Errorf("%w: radius must be greater than 0", ErrInvalidRequest)
	}
	if !s.Configured() {
		return resp, ErrMapsNotConfigured
	}

	params := url.Values{
		"location": {formatLatLng(q.Location)},
		"radius":   {strconv.Itoa(q.Radius)},
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}

	key := fmt.Sprintf("nearby:%s:%d:%s", formatLatLng(q.Location), q.Radius, q.Type)
	return cached(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.NearbyResponse, error) {
		var resp models.NearbyResponse
		if err := fetchJSON(ctx, s.client, "places_nearby", s.baseURL+"/place/nearbysearch/json", s.params(params), &resp); err != nil {
			return resp, err
		}
		return resp, checkStatus("places_nearby", resp.Status, resp.ErrorMessage, true)
	})
}

// Roads snaps a "lat,lng|lat,lng" path to roads and optionally looks up the
// posted speed limits of the snapped segments.
func (s *MapsService) Roads(ctx context.Context, q RoadsQuery) (models.RoadsResult, error) {
	var result models.RoadsResult
	if strings.TrimSpace(q.Path) == "" {
		return result, fmt.Errorf(`%w: path is required (format: "lat,lng|lat,lng|...")`, ErrInvalidRequest)
	}
	if !s.Configured() {
		return result, ErrMapsNotConfigured
	}

	var snapped struct {
		SnappedPoints []models.SnappedPoint `json:"snappedPoints"`
	}
	params := s.params(url.Values{
		"path":        {q.Path},
		"interpolate": {strconv.FormatBool(q.Interpolate)},
	})
	if err := fetchJSON(ctx, s.client, "roads", s.roadsURL+"/snapToRoads", params, &snapped); err != nil {
		return result, err
	}
	if len(snapped.SnappedPoints) == 0 {
		return result, &UpstreamError{Service: "roads", Status: statusZeroResults, Message: "no snapped points"}
	}
	result.SnappedPoints = snapped.SnappedPoints
	result.SpeedLimits = []models.SpeedLimit{}

	if !q.SpeedLimits {
		return result, nil
	}

	placeIDs := uniquePlaceIDs(snapped.SnappedPoints)
	if len(placeIDs) == 0 {
		return result, nil
	}

	var limits struct {
		SpeedLimits []models.SpeedLimit `json:"speedLimits"`
	}
	if err := fetchJSON(ctx, s.client, "speed_limits", s.roadsURL+"/speedLimits", s.params(url.Values{"placeId": placeIDs}), &limits); err != nil {
		return result, err
	}
	if limits.SpeedLimits != nil {
		result.SpeedLimits = limits.SpeedLimits
	}
	return result, nil
}

// ReverseGeocode returns the address at a point and whether it lies in an
// urban, suburban or rural area.
func (s *MapsService) ReverseGeocode(ctx context.Context, lat, lng float64) (models.ReverseGeocode, error) {
	resp, err := s.Geocode(ctx, "", formatLatLng(models.LatLng{Lat: lat, Lng: lng}))
	if err != nil {
		return models.ReverseGeocode{}, err
	}

	out := models.ReverseGeocode{UrbanRural: risk.AreaSuburban}
	if len(resp.Results) == 0 {
		return out, nil
	}

	first := resp.Results[0]
	out.Address = first.FormattedAddress
	out.UrbanRural = classifyArea(first.AddressComponents)
	for _, c := range first.AddressComponents {
		out.Components = append(out.Components, c.LongName)
	}
	return out, nil
}

// classifyArea treats a locality as urban and a point outside any
// administrative area as rural.
func classifyArea(components []models.AddressComponent) risk.AreaType {
	hasAdmin := false
	for _, c := range components {
		if c.HasType("locality") || c.HasType("sublocality") {
			return risk.AreaUrban
		}
		if c.HasType("administrative_area_level_1") || c.HasType("administrative_area_level_2") {
			hasAdmin = true
		}
	}
	if !hasAdmin {
		return risk.AreaRural
	}
	return risk.AreaSuburban
}

func (s *MapsService) params(q url.Values) url.Values {
	out := make(url.Values, len(q)+1)
	for k, v := range q {
		out[k] = v
	}
	out.Set("key", s.apiKey)
	return out
}

// plainText strips the markup Google puts in step instructions. Block
// elements start a new phrase, so they are separated by a space.
func (s *MapsService) plainText(instructions string) string {
	spaced := strings.ReplaceAll(instructions, "<div", " <div")
	text := html.UnescapeString(s.sanitizer.Sanitize(spaced))
	return strings.Join(strings.Fields(text), " ")
}

func checkStatus(service, status, message string, allowZero bool) error {
	if status == statusOK || (allowZero && status == statusZeroResults) {
		return nil
	}
	if message == "" {
		message = fmt.Sprintf("%s API returned status: %s", service, status)
	}
	return &UpstreamError{Service: service, Status: status, Message: message}
}

func uniquePlaceIDs(points []models.SnappedPoint) []string {
	seen := make(map[string]bool, len(points))
	var ids []string
	for _, p := range points {
		if p.PlaceID == "" || seen[p.PlaceID] {
			continue
		}
		seen[p.PlaceID] = true
		ids = append(ids, p.PlaceID)
		if len(ids) == maxSpeedLimitPlaces {
			break
		}
	}
	return ids
}

func formatLatLng(p models.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
