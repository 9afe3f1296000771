package models

import "time"

// Itinerary is one user's planned trip: a destination, a date range and an
// ordered day-by-day activity plan. Destination and dates are fixed at
// creation; only num_persons, budget and trip_type may change afterwards.
type Itinerary struct {
	ItineraryID string    `json:"itineraryid" bson:"itineraryid"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Destination string    `json:"destination" bson:"destination"`
	StartDate   string    `json:"start_date" bson:"start_date"` // YYYY-MM-DD
	EndDate     string    `json:"end_date" bson:"end_date"`     // YYYY-MM-DD
	NumPersons  int       `json:"num_persons" bson:"num_persons"`
	TripType    string    `json:"trip_type" bson:"trip_type"`
	Budget      float64   `json:"budget" bson:"budget"`
	Days        []DayPlan `json:"days" bson:"days"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type DayPlan struct {
	Title      string   `json:"title" bson:"title"`
	Activities []string `json:"activities" bson:"activities"`
}
