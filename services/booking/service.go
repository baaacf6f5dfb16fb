package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"stayease/database"
	bookingRepo "stayease/database/repository/booking"
	hotelRepo "stayease/database/repository/hotel"
	"stayease/models"
	"stayease/services/availability"
	"stayease/utils"
)

// codeAttempts bounds booking-code regeneration on collision. The space is
// 36^4 per prefix, so a second collision in a row is already vanishingly rare.
const codeAttempts = 5

// CreateInput carries everything needed to reserve a stay. Identity fields
// come from the identity provider, never from the request body.
type CreateInput struct {
	HotelID   string
	Checkin   string
	Checkout  string
	Guests    int
	UserID    string
	UserName  string
	UserEmail string
}

// Service is the reservation engine.
type Service interface {
	// Create reserves every night in [checkin, checkout) and writes the
	// booking record, all inside one atomic transaction. Returns the booking
	// code on success. On any failure no night is decremented and no record
	// is written.
	Create(ctx context.Context, input CreateInput) (string, error)

	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// DefaultService is the production reservation engine.
type DefaultService struct {
	Repo   bookingRepo.BookingRepository
	Hotels hotelRepo.HotelRepository
	Cache  *redis.Client // availability cache invalidation, optional
}

func (s *DefaultService) Create(ctx context.Context, input CreateInput) (string, error) {
	// Everything here runs before any store access.
	if input.HotelID == "" {
		return "", newInvalidInput("hotelID is required")
	}
	if input.Guests < 1 {
		return "", newInvalidInput("at least one guest is required")
	}
	if input.UserID == "" {
		return "", newInvalidInput("user identity is required")
	}
	nights, err := utils.Nights(input.Checkin, input.Checkout)
	if err != nil {
		return "", newInvalidInput(err.Error())
	}

	hotel, err := s.Hotels.GetByID(ctx, input.HotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			return "", &Error{Code: CodeHotelNotFound, Message: "hotel does not exist"}
		}
		return "", s.mapStoreError(err)
	}

	var bookingID string
	err = s.Repo.RunReservation(ctx, func(tx bookingRepo.Tx) error {
		// Read every night before writing anything; the per-night records are
		// the only concurrency control there is.
		var totalPrice float64
		for _, night := range nights {
			rec, err := tx.GetNight(input.HotelID, night)
			if errors.Is(err, bookingRepo.ErrNightNotFound) {
				return newNoAvailability(night)
			}
			if err != nil {
				return err
			}
			if rec.RoomsAvailable < 1 {
				return newSoldOut(night)
			}
			totalPrice += rec.Price
		}

		for _, night := range nights {
			if err := tx.DecrementNight(input.HotelID, night); err != nil {
				if errors.Is(err, bookingRepo.ErrNightConflict) {
					return newSoldOut(night)
				}
				return err
			}
		}

		booking := &models.Booking{
			HotelID:    input.HotelID,
			HotelName:  hotel.Name,
			UserID:     input.UserID,
			UserName:   input.UserName,
			UserEmail:  input.UserEmail,
			Checkin:    input.Checkin,
			Checkout:   input.Checkout,
			Guests:     input.Guests,
			TotalPrice: totalPrice,
		}

		// The code generator does not guarantee uniqueness; the insert checks
		// inside this same transaction and we regenerate on collision.
		for attempt := 0; attempt < codeAttempts; attempt++ {
			code, err := GenerateCode()
			if err != nil {
				return err
			}
			booking.ID = code
			inserted, err := tx.InsertBooking(booking)
			if err != nil {
				return err
			}
			if inserted {
				bookingID = code
				return nil
			}
			zap.L().Warn("booking code collision, regenerating", zap.String("code", code))
		}
		return fmt.Errorf("could not allocate a unique booking code after %d attempts", codeAttempts)
	})
	if err != nil {
		if _, ok := AsError(err); ok {
			return "", err
		}
		return "", s.mapStoreError(err)
	}

	availability.InvalidateHotel(ctx, s.Cache, input.HotelID)
	zap.L().Info("booking created",
		zap.String("bookingID", bookingID),
		zap.String("hotelID", input.HotelID),
		zap.Int("nights", len(nights)))
	return bookingID, nil
}

func (s *DefaultService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, bookingID)
}

func (s *DefaultService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// mapStoreError translates infrastructure failures into the engine's
// taxonomy, so callers can tell retryable conflicts from fatal denials.
func (s *DefaultService) mapStoreError(err error) error {
	switch {
	case errors.Is(err, database.ErrTxnExhausted):
		return &Error{Code: CodeConflict, Message: "reservation kept conflicting with concurrent bookings, try again"}
	case database.IsPermissionDenied(err):
		return &Error{Code: CodePermission, Message: "store rejected the operation"}
	default:
		return fmt.Errorf("reservation failed: %w", err)
	}
}
