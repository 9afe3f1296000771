package models

import "time"

// Booking categories
const (
	CategoryFlight     = "Flight"
	CategoryTrain      = "Train"
	CategoryHotel      = "Hotel"
	CategoryRestaurant = "Restaurant"
	CategoryActivity   = "Activity"
)

// Booking is a single reservation/expense attached to exactly one itinerary.
// Origin is meaningful only for Flight and Train entries.
type Booking struct {
	BookingID   string    `json:"bookingid" bson:"bookingid"`
	UserID      string    `json:"user_id" bson:"user_id"`
	ItineraryID string    `json:"itineraryid" bson:"itineraryid"`
	Category    string    `json:"category" bson:"category"`
	Name        string    `json:"name" bson:"name"`
	Origin      string    `json:"origin,omitempty" bson:"origin,omitempty"`
	Date        string    `json:"date" bson:"date"` // YYYY-MM-DD
	Time        string    `json:"time,omitempty" bson:"time,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ValidCategory reports whether c is one of the known booking categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFlight, CategoryTrain, CategoryHotel, CategoryRestaurant, CategoryActivity:
		return true
	}
	return false
}

// HasOrigin reports whether bookings of category c carry an origin field.
func HasOrigin(c string) bool {
	return c == CategoryFlight || c == CategoryTrain
}
