package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayease/middleware"
	"stayease/models"
	"stayease/services/user"
	"stayease/utils"
)

// UserHandler exposes the favorites surface over HTTP.
type UserHandler struct {
	Svc user.Service
}

// NewUserHandler constructs a new UserHandler.
func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) identity(c *gin.Context) *models.User {
	return &models.User{
		ID:    c.GetString(middleware.CtxUserID),
		Name:  c.GetString(middleware.CtxUserName),
		Email: c.GetString(middleware.CtxUserEmail),
	}
}

// AddFavoriteHandler adds a hotel to the caller's favorites.
func (h *UserHandler) AddFavoriteHandler(c *gin.Context) {
	u := h.identity(c)
	ctx := c.Request.Context()

	if err := h.Svc.EnsureUser(ctx, u); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update favorites", "")
		return
	}
	if err := h.Svc.AddFavorite(ctx, u.ID, c.Param("hotelID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update favorites", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveFavoriteHandler removes a hotel from the caller's favorites.
func (h *UserHandler) RemoveFavoriteHandler(c *gin.Context) {
	u := h.identity(c)

	if err := h.Svc.RemoveFavorite(c.Request.Context(), u.ID, c.Param("hotelID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update favorites", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetFavoritesHandler lists the caller's favorite hotel IDs.
func (h *UserHandler) GetFavoritesHandler(c *gin.Context) {
	favorites, err := h.Svc.GetFavorites(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		// A user document might not exist yet; that just means no favorites.
		c.JSON(http.StatusOK, []string{})
		return
	}
	if favorites == nil {
		favorites = []string{}
	}
	c.JSON(http.StatusOK, favorites)
}
