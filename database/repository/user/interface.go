package userRepo

import (
	"context"

	"stayease/models"
)

// UserRepository persists the application-side user state (favorites).
// Identity itself lives with the identity provider.
type UserRepository interface {
	// Upsert creates or refreshes the user document from provider claims.
	Upsert(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, userID string) (*models.User, error)

	AddFavorite(ctx context.Context, userID, hotelID string) error
	RemoveFavorite(ctx context.Context, userID, hotelID string) error

	// RemoveFavoriteFromAll prunes a hotel from every user's favorites.
	// Used by the cleanup worker after a hotel is soft-deleted; returns the
	// number of users touched.
	RemoveFavoriteFromAll(ctx context.Context, hotelID string) (int64, error)
}
