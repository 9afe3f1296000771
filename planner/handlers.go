package planner

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"routegenie/geo"
	"routegenie/logger"
	"routegenie/models"
	"routegenie/utils"
)

// Budget is a pointer so an omitted budget fails the required check while an
// explicit zero passes.
type GenerateRequest struct {
	Destination string   `json:"destination" validate:"required"`
	StartDate   string   `json:"start_date" validate:"required"`
	EndDate     string   `json:"end_date" validate:"required"`
	NumPersons  int      `json:"num_persons" validate:"required,gt=0"`
	TripType    string   `json:"trip_type" validate:"required"`
	Budget      *float64 `json:"budget" validate:"required,gte=0"`
}

type GenerateResponse struct {
	GenerateRequest
	Days []models.DayPlan `json:"days"`
}

// Generate synthesizes a day-wise plan for the requested trip from live
// geodata. Nothing is persisted; creating the itinerary is a separate call.
//
// POST /api/itineraries/generate
func Generate(gc *geo.Client) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		dayCount, err := DaySpan(req.StartDate, req.EndDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := r.Context()
		coords, err := gc.ResolveCoordinates(ctx, req.Destination)
		if err != nil {
			if errors.Is(err, geo.ErrPlaceNotFound) {
				utils.RespondWithError(w, http.StatusBadRequest, "Destination could not be resolved")
				return
			}
			logger.Log.Errorf("generate: geocoder failure for %q: %v", req.Destination, err)
			utils.RespondWithError(w, http.StatusBadGateway, "Geodata service unavailable")
			return
		}

		var lists [3][]string
		for i, category := range []string{"attraction", "restaurant", "hotel"} {
			names, err := gc.SearchPlaces(ctx, coords, category)
			if err != nil {
				logger.Log.Errorf("generate: place search failure for %q/%s: %v", req.Destination, category, err)
				utils.RespondWithError(w, http.StatusBadGateway, "Geodata service unavailable")
				return
			}
			lists[i] = names
		}

		resp := GenerateResponse{
			GenerateRequest: req,
			Days:            BuildDays(dayCount, lists[0], lists[1], lists[2]),
		}
		utils.RespondWithJSON(w, http.StatusOK, resp)
	}
}
