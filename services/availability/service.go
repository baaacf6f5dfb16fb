package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"stayease/database"
	availabilityRepo "stayease/database/repository/availability"
	"stayease/models"
	"stayease/utils"
)

// ErrPermissionDenied means the store rejected the write. Fatal for the
// caller, never retried.
var ErrPermissionDenied = errors.New("permission denied by store")

// InputError rejects a request before any store access.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Message
}

// IsInputError reports whether err is a validation failure.
func IsInputError(err error) bool {
	var e *InputError
	return errors.As(err, &e)
}

// Service manages the per-night price and room-count ledger.
type Service interface {
	// SetRange overwrites one record per calendar day in [startDate, endDate],
	// both inclusive, atomically. This is a destructive set, not a merge.
	SetRange(ctx context.Context, hotelID, startDate, endDate string, price float64, rooms int) error

	// GetRange returns the configured records in the inclusive range, in date
	// order. An empty result means "not configured", which is unbookable.
	GetRange(ctx context.Context, hotelID, startDate, endDate string) ([]models.AvailabilityRecord, error)
}

// DefaultService is the production ledger service.
type DefaultService struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache *redis.Client // optional read-through cache
}

func (s *DefaultService) SetRange(ctx context.Context, hotelID, startDate, endDate string, price float64, rooms int) error {
	if hotelID == "" {
		return &InputError{Message: "hotelID is required"}
	}
	if price <= 0 {
		return &InputError{Message: "price must be positive"}
	}
	if rooms < 0 {
		return &InputError{Message: "rooms must not be negative"}
	}
	days, err := utils.DaysInclusive(startDate, endDate)
	if err != nil {
		return &InputError{Message: err.Error()}
	}

	records := make([]models.AvailabilityRecord, len(days))
	for i, day := range days {
		records[i] = models.AvailabilityRecord{
			ID:             models.NightKey(hotelID, day),
			HotelID:        hotelID,
			Date:           day,
			Price:          price,
			RoomsAvailable: rooms,
		}
	}

	if err := s.Repo.SetRange(ctx, records); err != nil {
		if database.IsPermissionDenied(err) {
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return fmt.Errorf("set range for hotel %s: %w", hotelID, err)
	}

	InvalidateHotel(ctx, s.Cache, hotelID)
	zap.L().Info("availability range set",
		zap.String("hotelID", hotelID),
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("days", len(days)))
	return nil
}

func (s *DefaultService) GetRange(ctx context.Context, hotelID, startDate, endDate string) ([]models.AvailabilityRecord, error) {
	if hotelID == "" {
		return nil, &InputError{Message: "hotelID is required"}
	}
	if _, err := utils.DaysInclusive(startDate, endDate); err != nil {
		return nil, &InputError{Message: err.Error()}
	}

	var key string
	if s.Cache != nil {
		key = rangeKey(hotelID, s.cacheVersion(ctx, hotelID), startDate, endDate)
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached []models.AvailabilityRecord
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	records, err := s.Repo.GetRange(ctx, hotelID, startDate, endDate)
	if err != nil {
		if database.IsPermissionDenied(err) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("get range for hotel %s: %w", hotelID, err)
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(records); err == nil {
			if err := s.Cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				zap.L().Warn("failed to cache availability range", zap.Error(err))
			}
		}
	}
	return records, nil
}
