package planner

import (
	"fmt"

	"routegenie/models"
	"routegenie/utils"
)

// Placeholder activities used when a place category has no matches near the
// destination.
const (
	FallbackAttraction = "Explore local area"
	FallbackRestaurant = "Try local cuisine"
	FallbackHotel      = "Relax at your hotel"
)

// DaySpan returns the inclusive number of calendar days between two
// YYYY-MM-DD dates. An end date before the start date is rejected.
func DaySpan(startDate, endDate string) (int, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start_date %q", startDate)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end_date %q", endDate)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end_date must not precede start_date")
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// BuildDays assembles the day-wise plan. Day i picks the i-th attraction,
// restaurant and hotel (wrapping around each list) in that order, falling
// back to the static placeholders for empty lists.
func BuildDays(dayCount int, attractions, restaurants, hotels []string) []models.DayPlan {
	days := make([]models.DayPlan, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		days = append(days, models.DayPlan{
			Title: fmt.Sprintf("Day %d", i+1),
			Activities: []string{
				pick(attractions, i, FallbackAttraction),
				pick(restaurants, i, FallbackRestaurant),
				pick(hotels, i, FallbackHotel),
			},
		})
	}
	return days
}

func pick(list []string, i int, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[i%len(list)]
}
