package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"routegenie/db"
	"routegenie/globals"
	"routegenie/models"
)

func intptr(n int) *int       { return &n }
func fptr(f float64) *float64 { return &f }
func strptr(s string) *string { return &s }

func authedRequest(method, target, body, userID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	return req.WithContext(ctx)
}

func idParam(id string) httprouter.Params {
	return httprouter.Params{{Key: "id", Value: id}}
}

func TestBuildUpdateSetAllowList(t *testing.T) {
	set, err := buildUpdateSet(updateRequest{
		NumPersons: intptr(4),
		Budget:     fptr(900),
		TripType:   strptr("family"),
	})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"num_persons": 4, "budget": 900.0, "trip_type": "family"}, set)

	set, err = buildUpdateSet(updateRequest{Budget: fptr(0)})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"budget": 0.0}, set)
}

func TestBuildUpdateSetRejections(t *testing.T) {
	_, err := buildUpdateSet(updateRequest{NumPersons: intptr(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num_persons")

	_, err = buildUpdateSet(updateRequest{Budget: fptr(-1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestBuildUpdateSetIgnoresImmutableFields(t *testing.T) {
	var req updateRequest
	payload := `{"destination":"Lisbon","start_date":"2027-01-01","days":[],"budget":500}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	set, err := buildUpdateSet(req)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"budget": 500.0}, set)
}

const createBody = `{
	"destination": "Goa",
	"start_date": "2026-10-01",
	"end_date": "2026-10-03",
	"num_persons": 2,
	"trip_type": "leisure",
	"budget": 1200,
	"days": [{"title": "Day 1", "activities": ["Aguada Fort"]}]
}`

func TestCreateItinerary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("round trip", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := httptest.NewRecorder()
		CreateItinerary(w, authedRequest(http.MethodPost, "/api/itineraries", createBody, "u1"), nil)
		require.Equal(mt, http.StatusCreated, w.Code)

		var stored models.Itinerary
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &stored))
		assert.NotEmpty(mt, stored.ItineraryID)
		assert.Equal(mt, "u1", stored.UserID)
		assert.Equal(mt, "Goa", stored.Destination)
		assert.Equal(mt, 1200.0, stored.Budget)
		require.Len(mt, stored.Days, 1)
		assert.Equal(mt, "Day 1", stored.Days[0].Title)
	})

	mt.Run("duplicate tuple rejected for same owner", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		w := httptest.NewRecorder()
		CreateItinerary(w, authedRequest(http.MethodPost, "/api/itineraries", createBody, "u1"), nil)
		assert.Equal(mt, http.StatusConflict, w.Code)
	})

	mt.Run("same tuple allowed for another owner", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := httptest.NewRecorder()
		CreateItinerary(w, authedRequest(http.MethodPost, "/api/itineraries", createBody, "u2"), nil)
		assert.Equal(mt, http.StatusCreated, w.Code)
	})

	mt.Run("missing budget", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		body := `{"destination":"Goa","start_date":"2026-10-01","end_date":"2026-10-03",
			"num_persons":2,"trip_type":"leisure","days":[{"title":"Day 1","activities":["Aguada Fort"]}]}`

		w := httptest.NewRecorder()
		CreateItinerary(w, authedRequest(http.MethodPost, "/api/itineraries", body, "u1"), nil)
		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "budget")
	})

	mt.Run("reversed dates", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		body := strings.Replace(createBody, `"end_date": "2026-10-03"`, `"end_date": "2026-09-03"`, 1)

		w := httptest.NewRecorder()
		CreateItinerary(w, authedRequest(http.MethodPost, "/api/itineraries", body, "u1"), nil)
		assert.Equal(mt, http.StatusBadRequest, w.Code)
	})
}

func TestGetItinerary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "routegenie.itineraries", mtest.FirstBatch))

		w := httptest.NewRecorder()
		GetItinerary(w, authedRequest(http.MethodGet, "/api/itineraries/i404", "", "u1"), idParam("i404"))
		assert.Equal(mt, http.StatusNotFound, w.Code)
	})

	mt.Run("foreign record", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		doc := bson.D{{Key: "itineraryid", Value: "i1"}, {Key: "user_id", Value: "someone-else"}}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "routegenie.itineraries", mtest.FirstBatch, doc))

		w := httptest.NewRecorder()
		GetItinerary(w, authedRequest(http.MethodGet, "/api/itineraries/i1", "", "u1"), idParam("i1"))
		assert.Equal(mt, http.StatusForbidden, w.Code)
	})

	mt.Run("owned record round trip", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		doc := bson.D{
			{Key: "itineraryid", Value: "i1"},
			{Key: "user_id", Value: "u1"},
			{Key: "destination", Value: "Goa"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "routegenie.itineraries", mtest.FirstBatch, doc))

		w := httptest.NewRecorder()
		GetItinerary(w, authedRequest(http.MethodGet, "/api/itineraries/i1", "", "u1"), idParam("i1"))
		require.Equal(mt, http.StatusOK, w.Code)

		var got models.Itinerary
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(mt, "Goa", got.Destination)
		assert.NotNil(mt, got.Days, "nil days are normalized to an empty slice")
	})
}

func TestUpdateItinerary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updates only mutable fields", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		owned := bson.D{
			{Key: "itineraryid", Value: "i1"},
			{Key: "user_id", Value: "u1"},
			{Key: "destination", Value: "Goa"},
			{Key: "num_persons", Value: 2},
		}
		updated := bson.D{
			{Key: "itineraryid", Value: "i1"},
			{Key: "user_id", Value: "u1"},
			{Key: "destination", Value: "Goa"},
			{Key: "num_persons", Value: 4},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "routegenie.itineraries", mtest.FirstBatch, owned),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "routegenie.itineraries", mtest.FirstBatch, updated),
		)

		body := `{"num_persons": 4, "destination": "Lisbon"}`
		w := httptest.NewRecorder()
		UpdateItinerary(w, authedRequest(http.MethodPut, "/api/itineraries/i1", body, "u1"), idParam("i1"))
		require.Equal(mt, http.StatusOK, w.Code)

		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "update" {
				continue
			}
			updates := evt.Command.Lookup("updates").String()
			assert.Contains(mt, updates, "num_persons")
			assert.NotContains(mt, updates, "destination")
		}

		var got models.Itinerary
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(mt, 4, got.NumPersons)
		assert.Equal(mt, "Goa", got.Destination)
	})

	mt.Run("foreign record", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		doc := bson.D{{Key: "itineraryid", Value: "i1"}, {Key: "user_id", Value: "someone-else"}}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "routegenie.itineraries", mtest.FirstBatch, doc))

		w := httptest.NewRecorder()
		UpdateItinerary(w, authedRequest(http.MethodPut, "/api/itineraries/i1", `{"budget": 1}`, "u1"), idParam("i1"))
		assert.Equal(mt, http.StatusForbidden, w.Code)
	})
}

func TestDeleteItineraryLeavesBookings(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete", func(mt *mtest.T) {
		db.ItineraryCollection = mt.Coll
		owned := bson.D{{Key: "itineraryid", Value: "i1"}, {Key: "user_id", Value: "u1"}}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "routegenie.itineraries", mtest.FirstBatch, owned),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		w := httptest.NewRecorder()
		DeleteItinerary(w, authedRequest(http.MethodDelete, "/api/itineraries/i1", "", "u1"), idParam("i1"))
		require.Equal(mt, http.StatusOK, w.Code)

		// exactly one delete command, and only against the itineraries
		// collection; bookings are never touched
		var deletes int
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "delete" {
				deletes++
				assert.Equal(mt, mt.Coll.Name(), evt.Command.Lookup("delete").StringValue())
			}
		}
		assert.Equal(mt, 1, deletes)
	})
}
