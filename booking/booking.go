package booking

import (
	"fmt"

	"routegenie/models"
)

const maxNotesLen = 500

// Price is a pointer so a payload that omits it fails the required check; an
// explicit zero still passes.
type createRequest struct {
	ItineraryID string   `json:"itineraryid" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Origin      string   `json:"origin,omitempty"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time,omitempty"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Notes       string   `json:"notes,omitempty" validate:"max=500"`
}

// Mutable fields only; anything else in the payload is ignored.
type updateRequest struct {
	Category *string  `json:"category,omitempty"`
	Name     *string  `json:"name,omitempty"`
	Origin   *string  `json:"origin,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Time     *string  `json:"time,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

func (req createRequest) check() error {
	if !models.ValidCategory(req.Category) {
		return fmt.Errorf("invalid or missing fields: category")
	}
	return nil
}

// applyUpdate merges the allow-listed fields onto b and re-applies the origin
// rule: origin is kept only for Flight and Train bookings.
func applyUpdate(b *models.Booking, req updateRequest) error {
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return fmt.Errorf("invalid or missing fields: category")
		}
		b.Category = *req.Category
	}
	if req.Name != nil {
		if *req.Name == "" {
			return fmt.Errorf("invalid or missing fields: name")
		}
		b.Name = *req.Name
	}
	if req.Origin != nil {
		b.Origin = *req.Origin
	}
	if req.Date != nil {
		if *req.Date == "" {
			return fmt.Errorf("invalid or missing fields: date")
		}
		b.Date = *req.Date
	}
	if req.Time != nil {
		b.Time = *req.Time
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return fmt.Errorf("invalid or missing fields: price")
		}
		b.Price = *req.Price
	}
	if req.Notes != nil {
		if len(*req.Notes) > maxNotesLen {
			return fmt.Errorf("invalid or missing fields: notes")
		}
		b.Notes = *req.Notes
	}
	if !models.HasOrigin(b.Category) {
		b.Origin = ""
	}
	return nil
}

// TotalSpend sums the prices of a set of bookings. Computed on read, never
// stored.
func TotalSpend(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.Price
	}
	return total
}
