package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCleanupFavorites = "hotel:cleanup_favorites"

// CleanupFavoritesPayload identifies the soft-deleted hotel whose favorites
// references must be pruned.
type CleanupFavoritesPayload struct {
	HotelID string `json:"hotelId"`
}

func NewCleanupFavoritesTask(hotelID string) (*asynq.Task, error) {
	b, err := json.Marshal(CleanupFavoritesPayload{HotelID: hotelID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCleanupFavorites, b), nil
}
