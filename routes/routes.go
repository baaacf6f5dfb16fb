package routes

import (
	"github.com/gin-gonic/gin"

	"stayease/handlers"
	"stayease/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Hotel        *handlers.HotelHandler
	User         *handlers.UserHandler
}

// RegisterRoutes wires the public, authenticated and manager route groups.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")

	// Public reads.
	api.GET("/hotels", h.Hotel.ListHotelsHandler)
	api.GET("/hotels/:hotelID", h.Hotel.GetHotelHandler)
	api.GET("/hotels/:hotelID/reviews", h.Hotel.ListReviewsHandler)
	api.GET("/hotels/:hotelID/availability", h.Availability.GetAvailabilityHandler)

	// Anything that acts on behalf of a user.
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.POST("/bookings", h.Booking.CreateBookingHandler)
		authed.GET("/bookings", h.Booking.ListMyBookingsHandler)
		authed.GET("/bookings/:bookingID", h.Booking.GetBookingHandler)

		authed.POST("/hotels/:hotelID/reviews", h.Hotel.AddReviewHandler)

		authed.GET("/users/favorites", h.User.GetFavoritesHandler)
		authed.POST("/users/favorites/:hotelID", h.User.AddFavoriteHandler)
		authed.DELETE("/users/favorites/:hotelID", h.User.RemoveFavoriteHandler)
	}

	// Property management surface.
	manager := api.Group("")
	manager.Use(middleware.AuthRequired(), middleware.ManagerRequired())
	{
		manager.POST("/hotels", h.Hotel.CreateHotelHandler)
		manager.DELETE("/hotels/:hotelID", h.Hotel.DeleteHotelHandler)
		manager.PUT("/hotels/:hotelID/availability", h.Availability.SetAvailabilityHandler)
	}
}
