package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routegenie/geo"
)

// fake providers: geocoder resolves anything except "Atlantis"; place search
// serves fixed lists per category.
func fakeGeo(t *testing.T) (*geo.Client, func()) {
	t.Helper()

	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Atlantis" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"lat":"15.2993","lon":"74.1240"}]`))
	}))

	places := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var names []string
		switch r.URL.Query().Get("categories") {
		case "tourism.attraction":
			names = []string{"Fort"}
		case "catering.restaurant":
			names = []string{"R1", "R2"}
		case "accommodation.hotel":
			names = nil
		}
		features := make([]map[string]any, 0, len(names))
		for _, n := range names {
			features = append(features, map[string]any{"properties": map[string]any{"name": n}})
		}
		json.NewEncoder(w).Encode(map[string]any{"features": features})
	}))

	client := &geo.Client{
		GeocoderURL: geocoder.URL,
		PlacesURL:   places.URL,
		HTTPClient:  &http.Client{Timeout: 2 * time.Second},
	}
	return client, func() {
		geocoder.Close()
		places.Close()
	}
}

func doGenerate(t *testing.T, gc *geo.Client, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/itineraries/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	Generate(gc)(w, req, nil)
	return w
}

func TestGenerateHappyPath(t *testing.T) {
	gc, cleanup := fakeGeo(t)
	defer cleanup()

	w := doGenerate(t, gc, `{
		"destination": "Goa",
		"start_date": "2025-04-10",
		"end_date": "2025-04-12",
		"num_persons": 2,
		"trip_type": "leisure",
		"budget": 1200
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Goa", resp.Destination)
	require.Len(t, resp.Days, 3)
	assert.Equal(t, "Day 1", resp.Days[0].Title)
	assert.Equal(t, []string{"Fort", "R1", FallbackHotel}, resp.Days[0].Activities)
	assert.Equal(t, []string{"Fort", "R2", FallbackHotel}, resp.Days[1].Activities)
	assert.Equal(t, []string{"Fort", "R1", FallbackHotel}, resp.Days[2].Activities)
}

func TestGenerateUnresolvableDestination(t *testing.T) {
	gc, cleanup := fakeGeo(t)
	defer cleanup()

	w := doGenerate(t, gc, `{
		"destination": "Atlantis",
		"start_date": "2025-04-10",
		"end_date": "2025-04-12",
		"num_persons": 2,
		"trip_type": "leisure",
		"budget": 1200
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Destination could not be resolved")
}

func TestGenerateRejectsReversedDates(t *testing.T) {
	gc, cleanup := fakeGeo(t)
	defer cleanup()

	w := doGenerate(t, gc, `{
		"destination": "Goa",
		"start_date": "2025-04-12",
		"end_date": "2025-04-10",
		"num_persons": 2,
		"trip_type": "leisure",
		"budget": 1200
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "end_date must not precede start_date")
}

func TestGenerateMissingFields(t *testing.T) {
	gc, cleanup := fakeGeo(t)
	defer cleanup()

	w := doGenerate(t, gc, `{"destination": "Goa"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "start_date")
	assert.Contains(t, body, "end_date")
	assert.Contains(t, body, "num_persons")
	assert.Contains(t, body, "trip_type")
	assert.Contains(t, body, "budget")
}

func TestGenerateAcceptsExplicitZeroBudget(t *testing.T) {
	gc, cleanup := fakeGeo(t)
	defer cleanup()

	w := doGenerate(t, gc, `{
		"destination": "Goa",
		"start_date": "2025-04-10",
		"end_date": "2025-04-10",
		"num_persons": 1,
		"trip_type": "budget",
		"budget": 0
	}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateUpstreamFailureAbortsWhole(t *testing.T) {
	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"15.0","lon":"74.0"}]`))
	}))
	defer geocoder.Close()
	places := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer places.Close()

	gc := &geo.Client{
		GeocoderURL: geocoder.URL,
		PlacesURL:   places.URL,
		HTTPClient:  &http.Client{Timeout: 2 * time.Second},
	}

	w := doGenerate(t, gc, `{
		"destination": "Goa",
		"start_date": "2025-04-10",
		"end_date": "2025-04-12",
		"num_persons": 2,
		"trip_type": "leisure",
		"budget": 1200
	}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "Day 1")
}
