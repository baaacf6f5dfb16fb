package hotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"stayease/database"
	hotelRepo "stayease/database/repository/hotel"
	"stayease/models"
	"stayease/services/tasks"
)

// Service manages hotel listings and the review workflow.
type Service interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	Get(ctx context.Context, hotelID string) (*models.Hotel, error)
	List(ctx context.Context) ([]models.Hotel, error)

	// Delete soft-deletes the hotel and queues the favorites cleanup fan-out.
	Delete(ctx context.Context, hotelID string) error

	// AddReview folds one rating into the hotel's running average, enforcing
	// one review per user per hotel, in a single atomic transaction.
	AddReview(ctx context.Context, input ReviewInput) error
	ListReviews(ctx context.Context, hotelID string) ([]models.Review, error)
}

// ReviewInput carries a new review. Identity fields come from the identity
// provider.
type ReviewInput struct {
	HotelID  string
	UserID   string
	UserName string
	Rating   int
	Comment  string
}

// DefaultService is the production hotel service.
type DefaultService struct {
	Repo  hotelRepo.HotelRepository
	Queue *asynq.Client // cleanup fan-out, optional in tests
}

func (s *DefaultService) Create(ctx context.Context, hotel *models.Hotel) error {
	if hotel.Name == "" {
		return &Error{Code: CodeInvalidInput, Message: "hotel name is required"}
	}
	if hotel.ID == "" {
		hotel.ID = uuid.New().String()
	}
	hotel.CreatedAt = time.Now().UTC()
	if err := s.Repo.Create(ctx, hotel); err != nil {
		return s.mapStoreError(err)
	}
	return nil
}

func (s *DefaultService) Get(ctx context.Context, hotelID string) (*models.Hotel, error) {
	hotel, err := s.Repo.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			return nil, &Error{Code: CodeNotFound, Message: "hotel does not exist"}
		}
		return nil, s.mapStoreError(err)
	}
	return hotel, nil
}

func (s *DefaultService) List(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.Repo.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(err)
	}
	return hotels, nil
}

func (s *DefaultService) Delete(ctx context.Context, hotelID string) error {
	if err := s.Repo.SoftDelete(ctx, hotelID); err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			return &Error{Code: CodeNotFound, Message: "hotel does not exist"}
		}
		return s.mapStoreError(err)
	}

	// The delete itself is done; pruning the hotel out of user favorites
	// happens asynchronously so the call does not scale with the user base.
	if s.Queue != nil {
		task, err := tasks.NewCleanupFavoritesTask(hotelID)
		if err != nil {
			return fmt.Errorf("build cleanup task for hotel %s: %w", hotelID, err)
		}
		if _, err := s.Queue.EnqueueContext(ctx, task, asynq.MaxRetry(10)); err != nil {
			return fmt.Errorf("enqueue cleanup for hotel %s: %w", hotelID, err)
		}
	}

	zap.L().Info("hotel soft-deleted", zap.String("hotelID", hotelID))
	return nil
}

func (s *DefaultService) AddReview(ctx context.Context, input ReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return &Error{Code: CodeInvalidInput, Message: "rating must be between 1 and 5"}
	}
	if input.UserID == "" {
		return &Error{Code: CodeInvalidInput, Message: "user identity is required"}
	}

	err := s.Repo.RunReview(ctx, func(tx hotelRepo.ReviewTx) error {
		// The duplicate check is a point read by deterministic key inside the
		// same transaction as the write, so two concurrent identical requests
		// cannot both pass it.
		existing, err := tx.GetReview(input.HotelID, input.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &Error{Code: CodeDuplicateReview, Message: "you have already reviewed this hotel"}
		}

		h, err := tx.GetHotel(input.HotelID)
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			return &Error{Code: CodeNotFound, Message: "hotel does not exist"}
		}
		if err != nil {
			return err
		}

		newAverage := (h.Rating*float64(h.ReviewCount) + float64(input.Rating)) / float64(h.ReviewCount+1)

		review := &models.Review{
			ID:        models.ReviewKey(input.HotelID, input.UserID),
			HotelID:   input.HotelID,
			UserID:    input.UserID,
			UserName:  input.UserName,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.InsertReview(review); err != nil {
			return err
		}
		return tx.SetRating(input.HotelID, newAverage, h.ReviewCount+1)
	})
	if err != nil {
		if _, ok := AsError(err); ok {
			return err
		}
		return s.mapStoreError(err)
	}

	zap.L().Info("review added",
		zap.String("hotelID", input.HotelID),
		zap.Int("rating", input.Rating))
	return nil
}

func (s *DefaultService) ListReviews(ctx context.Context, hotelID string) ([]models.Review, error) {
	reviews, err := s.Repo.ListReviews(ctx, hotelID)
	if err != nil {
		return nil, s.mapStoreError(err)
	}
	return reviews, nil
}

func (s *DefaultService) mapStoreError(err error) error {
	switch {
	case errors.Is(err, database.ErrTxnExhausted):
		return &Error{Code: CodeConflict, Message: "operation kept conflicting with concurrent writes, try again"}
	case database.IsPermissionDenied(err):
		return &Error{Code: CodePermission, Message: "store rejected the operation"}
	default:
		return fmt.Errorf("hotel operation failed: %w", err)
	}
}
