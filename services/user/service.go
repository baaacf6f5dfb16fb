package user

import (
	"context"
	"fmt"

	userRepo "stayease/database/repository/user"
	"stayease/models"
)

// Service keeps the small slice of user state the application owns:
// the provider-mirrored profile and the favorites set.
type Service interface {
	// EnsureUser upserts the profile from identity-provider claims. Called on
	// authenticated requests so favorites always have a document to land on.
	EnsureUser(ctx context.Context, u *models.User) error

	AddFavorite(ctx context.Context, userID, hotelID string) error
	RemoveFavorite(ctx context.Context, userID, hotelID string) error
	GetFavorites(ctx context.Context, userID string) ([]string, error)
}

// DefaultUserService is the production user service.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) EnsureUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	return s.Repo.Upsert(ctx, u)
}

func (s *DefaultUserService) AddFavorite(ctx context.Context, userID, hotelID string) error {
	return s.Repo.AddFavorite(ctx, userID, hotelID)
}

func (s *DefaultUserService) RemoveFavorite(ctx context.Context, userID, hotelID string) error {
	return s.Repo.RemoveFavorite(ctx, userID, hotelID)
}

func (s *DefaultUserService) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}
