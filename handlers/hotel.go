package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayease/middleware"
	"stayease/models"
	"stayease/services/hotel"
	"stayease/utils"
)

// HotelHandler exposes hotel listings and the review workflow over HTTP.
type HotelHandler struct {
	Svc hotel.Service
}

// NewHotelHandler constructs a new HotelHandler.
func NewHotelHandler(svc hotel.Service) *HotelHandler {
	return &HotelHandler{Svc: svc}
}

// CreateHotelHandler registers a new hotel listing. Property-manager only.
func (h *HotelHandler) CreateHotelHandler(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		City        string   `json:"city"`
		Description string   `json:"description"`
		Amenities   []string `json:"amenities"`
		BasePrice   float64  `json:"basePrice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hotelDoc := &models.Hotel{
		Name:        input.Name,
		City:        input.City,
		Description: input.Description,
		Amenities:   input.Amenities,
		BasePrice:   input.BasePrice,
	}
	if err := h.Svc.Create(c.Request.Context(), hotelDoc); err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hotelDoc)
}

// GetHotelHandler returns one hotel; soft-deleted hotels read as absent.
func (h *HotelHandler) GetHotelHandler(c *gin.Context) {
	hotelDoc, err := h.Svc.Get(c.Request.Context(), c.Param("hotelID"))
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotelDoc)
}

// ListHotelsHandler returns all non-deleted hotels.
func (h *HotelHandler) ListHotelsHandler(c *gin.Context) {
	hotels, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// DeleteHotelHandler soft-deletes a hotel and queues the favorites cleanup.
// Property-manager only.
func (h *HotelHandler) DeleteHotelHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("hotelID")); err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddReviewHandler records the authenticated user's review of a hotel.
func (h *HotelHandler) AddReviewHandler(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Svc.AddReview(c.Request.Context(), hotel.ReviewInput{
		HotelID:  c.Param("hotelID"),
		UserID:   c.GetString(middleware.CtxUserID),
		UserName: c.GetString(middleware.CtxUserName),
		Rating:   input.Rating,
		Comment:  input.Comment,
	})
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// ListReviewsHandler returns a hotel's reviews, newest first.
func (h *HotelHandler) ListReviewsHandler(c *gin.Context) {
	reviews, err := h.Svc.ListReviews(c.Request.Context(), c.Param("hotelID"))
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func respondHotelError(c *gin.Context, err error) {
	if e, ok := hotel.AsError(err); ok {
		switch e.Code {
		case hotel.CodeInvalidInput:
			utils.JSONError(c, http.StatusBadRequest, "invalid input", e.Message)
		case hotel.CodeNotFound:
			utils.JSONError(c, http.StatusNotFound, "hotel not found", "")
		case hotel.CodeDuplicateReview:
			utils.JSONError(c, http.StatusConflict, "duplicate review", e.Message)
		case hotel.CodeConflict:
			utils.JSONError(c, http.StatusServiceUnavailable, "operation could not be completed, please retry", "")
		case hotel.CodePermission:
			utils.JSONError(c, http.StatusForbidden, "operation not permitted", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "hotel operation failed", "")
		}
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "hotel operation failed", "")
}
