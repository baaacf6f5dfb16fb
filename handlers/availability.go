package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayease/services/availability"
	"stayease/utils"
)

// AvailabilityHandler exposes the per-night ledger over HTTP.
type AvailabilityHandler struct {
	Svc availability.Service
}

// NewAvailabilityHandler constructs a new AvailabilityHandler.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// SetAvailabilityHandler overwrites price and room count for every day in the
// inclusive range. Property-manager only.
func (h *AvailabilityHandler) SetAvailabilityHandler(c *gin.Context) {
	var input struct {
		StartDate string  `json:"startDate" binding:"required"`
		EndDate   string  `json:"endDate" binding:"required"`
		Price     float64 `json:"price" binding:"required"`
		Rooms     int     `json:"rooms"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Svc.SetRange(c.Request.Context(), c.Param("hotelID"), input.StartDate, input.EndDate, input.Price, input.Rooms)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetAvailabilityHandler returns the configured records in the inclusive
// range. Missing days mean the hotel is not bookable on them.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	records, err := h.Svc.GetRange(c.Request.Context(), c.Param("hotelID"), from, to)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func respondAvailabilityError(c *gin.Context, err error) {
	switch {
	case availability.IsInputError(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, availability.ErrPermissionDenied):
		utils.JSONError(c, http.StatusForbidden, "operation not permitted", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "availability operation failed", "")
	}
}
