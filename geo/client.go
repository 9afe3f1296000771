package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Sentinel errors surfaced to callers. Anything wrapped in ErrUpstream is a
// provider/transport failure, not a bad request.
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrUpstream      = errors.New("geodata upstream failure")
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place-search categories accepted by SearchPlaces, mapped to the provider's
// category ids.
var placeCategories = map[string]string{
	"attraction": "tourism.attraction",
	"hotel":      "accommodation.hotel",
	"restaurant": "catering.restaurant",
}

const searchRadiusMeters = 5000

// Client wraps the two outbound geodata calls: free-text geocoding and
// point-of-interest search around a coordinate. Best effort: no retries, no
// caching, default timeout only.
type Client struct {
	GeocoderURL string
	PlacesURL   string
	APIKey      string
	HTTPClient  *http.Client
}

func NewClient() *Client {
	geocoderURL := os.Getenv("GEOCODER_URL")
	if geocoderURL == "" {
		geocoderURL = "https://nominatim.openstreetmap.org/search"
	}
	placesURL := os.Getenv("PLACES_URL")
	if placesURL == "" {
		placesURL = "https://api.geoapify.com/v2/places"
	}
	return &Client{
		GeocoderURL: geocoderURL,
		PlacesURL:   placesURL,
		APIKey:      os.Getenv("PLACES_API_KEY"),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ResolveCoordinates geocodes a free-text place name and returns the first
// match. Returns ErrPlaceNotFound when the provider has no result.
func (c *Client) ResolveCoordinates(ctx context.Context, placeName string) (Coordinates, error) {
	q := url.Values{}
	q.Set("q", placeName)
	q.Set("format", "json")
	q.Set("limit", "1")

	// Nominatim returns lat/lon as strings
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := c.getJSON(ctx, c.GeocoderURL+"?"+q.Encode(), &results); err != nil {
		return Coordinates{}, err
	}
	if len(results) == 0 {
		return Coordinates{}, ErrPlaceNotFound
	}

	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(results[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return Coordinates{}, fmt.Errorf("%w: malformed geocoder coordinates", ErrUpstream)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// SearchPlaces returns the names of points of interest of the given category
// within 5 km of the coordinate. Entries without a name are dropped. An empty
// slice is a valid result.
func (c *Client) SearchPlaces(ctx context.Context, coords Coordinates, category string) ([]string, error) {
	providerCategory, ok := placeCategories[category]
	if !ok {
		return nil, fmt.Errorf("unknown place category %q", category)
	}

	q := url.Values{}
	q.Set("categories", providerCategory)
	q.Set("filter", fmt.Sprintf("circle:%f,%f,%d", coords.Lon, coords.Lat, searchRadiusMeters))
	q.Set("limit", "20")
	if c.APIKey != "" {
		q.Set("apiKey", c.APIKey)
	}

	var result struct {
		Features []struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := c.getJSON(ctx, c.PlacesURL+"?"+q.Encode(), &result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Features))
	for _, f := range result.Features {
		if f.Properties.Name != "" {
			names = append(names, f.Properties.Name)
		}
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "routegenie/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
