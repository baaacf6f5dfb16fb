package availabilityRepo

import (
	"context"

	"stayease/models"
)

// AvailabilityRepository persists the per-night ledger.
type AvailabilityRepository interface {
	// SetRange writes every record in one atomic batch: either all nights are
	// applied or none. Existing records for the same nights are overwritten.
	SetRange(ctx context.Context, records []models.AvailabilityRecord) error

	// GetRange returns the configured records for hotelID with
	// startDate <= date <= endDate, in date order. Nights that were never
	// configured are simply absent from the result.
	GetRange(ctx context.Context, hotelID, startDate, endDate string) ([]models.AvailabilityRecord, error)
}
