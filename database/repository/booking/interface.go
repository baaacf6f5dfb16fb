package bookingRepo

import (
	"context"
	"errors"

	"stayease/models"
)

var (
	// ErrNightNotFound means no availability record exists for the night.
	ErrNightNotFound = errors.New("night not configured")
	// ErrNightConflict means the guarded decrement found no room left.
	ErrNightConflict = errors.New("night no longer available")
)

// Tx exposes the store operations available inside one reservation
// transaction. Every read and write issued through it belongs to the same
// serializable unit of work.
type Tx interface {
	// GetNight reads the availability record for one hotel night.
	// Returns ErrNightNotFound if the night was never configured.
	GetNight(hotelID, date string) (*models.AvailabilityRecord, error)

	// DecrementNight takes exactly one room off the night, guarded so the
	// count can never go below zero. Returns ErrNightConflict if no room
	// remained at apply time.
	DecrementNight(hotelID, date string) error

	// InsertBooking writes the booking record with a server-assigned
	// timestamp. Returns false (and no error) if a booking with the same ID
	// already exists, so the caller can regenerate the code and try again.
	InsertBooking(booking *models.Booking) (bool, error)
}

// BookingRepository persists bookings and runs reservation transactions.
type BookingRepository interface {
	// RunReservation executes fn inside one atomic transaction with bounded
	// retry on write conflicts. If fn returns an error the transaction is
	// aborted and no write survives.
	RunReservation(ctx context.Context, fn func(tx Tx) error) error

	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}
