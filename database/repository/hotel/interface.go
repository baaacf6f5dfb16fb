package hotelRepo

import (
	"context"
	"errors"

	"stayease/models"
)

// ErrHotelNotFound means the hotel does not exist or is soft-deleted.
var ErrHotelNotFound = errors.New("hotel not found")

// ReviewTx exposes the store operations available inside one review
// transaction, so the duplicate check, the rating read and both writes are
// serializable together.
type ReviewTx interface {
	// GetHotel reads the hotel document. Returns ErrHotelNotFound if it does
	// not exist or is soft-deleted.
	GetHotel(hotelID string) (*models.Hotel, error)

	// GetReview reads the review by its deterministic (hotel, user) key.
	// Returns (nil, nil) when the user has not reviewed the hotel.
	GetReview(hotelID, userID string) (*models.Review, error)

	InsertReview(review *models.Review) error

	// SetRating writes the recomputed running average and review count.
	SetRating(hotelID string, rating float64, reviewCount int) error
}

// HotelRepository persists hotel documents and their reviews.
type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, hotelID string) (*models.Hotel, error)
	List(ctx context.Context) ([]models.Hotel, error)

	// SoftDelete flags the hotel as deleted; the document itself stays.
	SoftDelete(ctx context.Context, hotelID string) error

	// RunReview executes fn inside one atomic transaction with bounded retry
	// on write conflicts.
	RunReview(ctx context.Context, fn func(tx ReviewTx) error) error

	ListReviews(ctx context.Context, hotelID string) ([]models.Review, error)
}
