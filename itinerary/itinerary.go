// itinerary.go
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"routegenie/db"
	"routegenie/models"
	"routegenie/planner"
	"routegenie/utils"
)

// Budget is a pointer so an omitted budget fails the required check while an
// explicit zero passes.
type createRequest struct {
	Destination string           `json:"destination" validate:"required"`
	StartDate   string           `json:"start_date" validate:"required"`
	EndDate     string           `json:"end_date" validate:"required"`
	NumPersons  int              `json:"num_persons" validate:"required,gt=0"`
	TripType    string           `json:"trip_type" validate:"required"`
	Budget      *float64         `json:"budget" validate:"required,gte=0"`
	Days        []models.DayPlan `json:"days" validate:"required,min=1"`
}

// POST /api/itineraries
func CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := planner.DaySpan(req.StartDate, req.EndDate); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	itin := models.Itinerary{
		ItineraryID: utils.GetUUID(),
		UserID:      userID,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		NumPersons:  req.NumPersons,
		TripType:    req.TripType,
		Budget:      *req.Budget,
		Days:        req.Days,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ItineraryCollection.InsertOne(ctx, itin); err != nil {
		// Unique index on (user_id, destination, start_date, end_date)
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "An itinerary for this destination and date range already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, itin)
}

type updateRequest struct {
	NumPersons *int     `json:"num_persons,omitempty"`
	Budget     *float64 `json:"budget,omitempty"`
	TripType   *string  `json:"trip_type,omitempty"`
}

// buildUpdateSet maps the mutable fields onto a $set document. Destination,
// dates and days never appear here no matter what the payload carried.
func buildUpdateSet(req updateRequest) (bson.M, error) {
	set := bson.M{}
	if req.NumPersons != nil {
		if *req.NumPersons <= 0 {
			return nil, fmt.Errorf("invalid or missing fields: num_persons")
		}
		set["num_persons"] = *req.NumPersons
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return nil, fmt.Errorf("invalid or missing fields: budget")
		}
		set["budget"] = *req.Budget
	}
	if req.TripType != nil {
		set["trip_type"] = *req.TripType
	}
	return set, nil
}

// PUT /api/itineraries/:id
//
// Only num_persons, budget and trip_type are mutable; destination, dates and
// days are fixed at creation no matter what the caller sends.
func UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	itineraryID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if existing.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set, err := buildUpdateSet(req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(set) > 0 {
		_, err = db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": itineraryID}, bson.M{"$set": set})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error updating itinerary")
			return
		}
	}

	var updated models.Itinerary
	if err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching updated itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/itineraries/:id
//
// Bookings referencing the itinerary are left in place; they stay readable
// and deletable on their own.
func DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	itineraryID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var itin models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&itin)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if itin.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if _, err := db.ItineraryCollection.DeleteOne(ctx, bson.M{"itineraryid": itineraryID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Itinerary deleted successfully"})
}
