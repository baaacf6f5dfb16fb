package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayease/middleware"
	"stayease/services/booking"
	"stayease/utils"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	Svc booking.Service
}

// NewBookingHandler constructs a new BookingHandler.
func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// CreateBookingHandler reserves a stay for the authenticated user.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input struct {
		HotelID  string `json:"hotelId" binding:"required"`
		Checkin  string `json:"checkin" binding:"required"`
		Checkout string `json:"checkout" binding:"required"`
		Guests   int    `json:"guests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bookingID, err := h.Svc.Create(c.Request.Context(), booking.CreateInput{
		HotelID:   input.HotelID,
		Checkin:   input.Checkin,
		Checkout:  input.Checkout,
		Guests:    input.Guests,
		UserID:    c.GetString(middleware.CtxUserID),
		UserName:  c.GetString(middleware.CtxUserName),
		UserEmail: c.GetString(middleware.CtxUserEmail),
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookingId": bookingID})
}

// GetBookingHandler returns one booking of the authenticated user.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")

	b, err := h.Svc.Get(c.Request.Context(), bookingID)
	if err != nil || b.UserID != c.GetString(middleware.CtxUserID) {
		// Not distinguishing "someone else's booking" from "no such booking".
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookingsHandler returns the authenticated user's bookings,
// newest first.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := h.Svc.ListForUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", "")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// respondBookingError maps the engine's error taxonomy onto HTTP statuses.
// Business outcomes carry the offending date; infrastructure detail stays out
// of the response body.
func respondBookingError(c *gin.Context, err error) {
	if e, ok := booking.AsError(err); ok {
		switch e.Code {
		case booking.CodeInvalidInput:
			utils.JSONError(c, http.StatusBadRequest, "invalid input", e.Message)
		case booking.CodeHotelNotFound:
			utils.JSONError(c, http.StatusNotFound, "hotel not found", e.Message)
		case booking.CodeNoAvailability, booking.CodeSoldOut:
			c.JSON(http.StatusConflict, utils.ErrorResponse{Message: e.Message, Date: e.Date})
		case booking.CodeConflict:
			utils.JSONError(c, http.StatusServiceUnavailable, "booking could not be completed, please retry", "")
		case booking.CodePermission:
			utils.JSONError(c, http.StatusForbidden, "operation not permitted", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "booking failed", "")
		}
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "booking failed", "")
}
