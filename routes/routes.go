package routes

import (
	"github.com/julienschmidt/httprouter"

	"routegenie/auth"
	"routegenie/booking"
	"routegenie/geo"
	"routegenie/itinerary"
	"routegenie/middleware"
	"routegenie/planner"
	"routegenie/ratelim"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddItineraryRoutes(router *httprouter.Router) {
	router.GET("/api/itineraries", middleware.Authenticate(itinerary.GetItineraries))       // Fetch the caller's itineraries
	router.POST("/api/itineraries", middleware.Authenticate(itinerary.CreateItinerary))     // Create a new itinerary
	router.GET("/api/itineraries/:id", middleware.Authenticate(itinerary.GetItinerary))     // Fetch a single itinerary
	router.PUT("/api/itineraries/:id", middleware.Authenticate(itinerary.UpdateItinerary))  // Update an itinerary
	router.DELETE("/api/itineraries/:id", middleware.Authenticate(itinerary.DeleteItinerary))
	router.GET("/api/itineraries/:id/print", middleware.Authenticate(itinerary.PrintItinerary)) // PDF export
}

func AddPlannerRoutes(router *httprouter.Router, gc *geo.Client) {
	router.POST("/api/itineraries/generate", ratelim.RateLimit(middleware.Authenticate(planner.Generate(gc))))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.GET("/api/bookings", middleware.Authenticate(booking.GetBookings))
	router.POST("/api/bookings/manual", ratelim.RateLimit(middleware.Authenticate(booking.CreateManualBooking)))
	router.PUT("/api/bookings/:id", middleware.Authenticate(booking.UpdateBooking))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(booking.DeleteBooking))
}
