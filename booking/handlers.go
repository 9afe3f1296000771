package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"routegenie/db"
	"routegenie/models"
	"routegenie/utils"
)

// GET /api/bookings
//
// Lists the caller's bookings, newest first, optionally narrowed to one
// itinerary via ?itinerary=<id>. The response carries the total spend of the
// returned set.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"user_id": userID}
	if itineraryID := r.URL.Query().Get("itinerary"); itineraryID != "" {
		filter["itineraryid"] = itineraryID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	bookings, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"bookings": bookings,
		"total":    TotalSpend(bookings),
	})
}

// POST /api/bookings/manual
//
// Manual entry attached to an existing itinerary. The referenced itinerary
// must belong to the caller; the check and the insert are separate round
// trips, so a concurrent itinerary delete can slip between them.
func CreateManualBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if err := req.check(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var itin models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": req.ItineraryID}).Decode(&itin)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if itin.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	b := models.Booking{
		BookingID:   utils.GetUUID(),
		UserID:      userID,
		ItineraryID: req.ItineraryID,
		Category:    req.Category,
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Price:       *req.Price,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}
	if models.HasOrigin(req.Category) {
		b.Origin = req.Origin
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, b)
}

// PUT /api/bookings/:id
func UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := applyUpdate(&b, req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{
		"category": b.Category,
		"name":     b.Name,
		"origin":   b.Origin,
		"date":     b.Date,
		"time":     b.Time,
		"price":    b.Price,
		"notes":    b.Notes,
	}}
	if _, err := db.BookingsCollection.UpdateOne(ctx, bson.M{"bookingid": bookingID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, b)
}

// DELETE /api/bookings/:id
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"bookingid": bookingID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Booking deleted successfully"})
}
