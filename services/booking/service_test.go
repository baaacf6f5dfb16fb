package booking

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayease/database"
	bookingRepo "stayease/database/repository/booking"
	hotelRepo "stayease/database/repository/hotel"
	"stayease/models"
)

// fakeStore is an in-memory stand-in for the transactional document store.
// RunReservation holds a mutex for the whole transaction, which models the
// store's serializable isolation: concurrent reservations on the same nights
// observe each other's committed decrements.
type fakeStore struct {
	mu       sync.Mutex
	nights   map[string]*models.AvailabilityRecord
	bookings map[string]*models.Booking

	reservations int // RunReservation invocations
	collideFirst int // force this many booking-code collisions
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nights:   make(map[string]*models.AvailabilityRecord),
		bookings: make(map[string]*models.Booking),
	}
}

func (f *fakeStore) addNight(hotelID, date string, price float64, rooms int) {
	rec := &models.AvailabilityRecord{
		ID:             models.NightKey(hotelID, date),
		HotelID:        hotelID,
		Date:           date,
		Price:          price,
		RoomsAvailable: rooms,
	}
	f.nights[rec.ID] = rec
}

func (f *fakeStore) rooms(hotelID, date string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nights[models.NightKey(hotelID, date)].RoomsAvailable
}

func (f *fakeStore) RunReservation(ctx context.Context, fn func(tx bookingRepo.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations++

	// Snapshot for rollback: a failed transaction leaves no partial writes.
	snapNights := make(map[string]*models.AvailabilityRecord, len(f.nights))
	for k, v := range f.nights {
		cp := *v
		snapNights[k] = &cp
	}
	snapBookings := make(map[string]*models.Booking, len(f.bookings))
	for k, v := range f.bookings {
		snapBookings[k] = v
	}

	if err := fn(&fakeTx{store: f}); err != nil {
		f.nights = snapNights
		f.bookings = snapBookings
		return err
	}
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	return b, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) GetNight(hotelID, date string) (*models.AvailabilityRecord, error) {
	rec, ok := t.store.nights[models.NightKey(hotelID, date)]
	if !ok {
		return nil, bookingRepo.ErrNightNotFound
	}
	cp := *rec
	return &cp, nil
}

func (t *fakeTx) DecrementNight(hotelID, date string) error {
	rec, ok := t.store.nights[models.NightKey(hotelID, date)]
	if !ok || rec.RoomsAvailable < 1 {
		return bookingRepo.ErrNightConflict
	}
	rec.RoomsAvailable--
	return nil
}

func (t *fakeTx) InsertBooking(booking *models.Booking) (bool, error) {
	if t.store.collideFirst > 0 {
		t.store.collideFirst--
		return false, nil
	}
	if _, exists := t.store.bookings[booking.ID]; exists {
		return false, nil
	}
	cp := *booking
	t.store.bookings[booking.ID] = &cp
	return true, nil
}

// fakeHotels only needs GetByID; the embedded interface panics on anything
// else, which is exactly what we want from an unexpected call.
type fakeHotels struct {
	hotelRepo.HotelRepository
	hotels map[string]*models.Hotel
	gets   int
}

func (f *fakeHotels) GetByID(ctx context.Context, hotelID string) (*models.Hotel, error) {
	f.gets++
	h, ok := f.hotels[hotelID]
	if !ok {
		return nil, hotelRepo.ErrHotelNotFound
	}
	return h, nil
}

func newService(store *fakeStore) (*DefaultService, *fakeHotels) {
	hotels := &fakeHotels{hotels: map[string]*models.Hotel{
		"h1": {ID: "h1", Name: "Seaside Grand"},
	}}
	return &DefaultService{Repo: store, Hotels: hotels}, hotels
}

func validInput() CreateInput {
	return CreateInput{
		HotelID:   "h1",
		Checkin:   "2024-06-01",
		Checkout:  "2024-06-03",
		Guests:    2,
		UserID:    "u1",
		UserName:  "Ada",
		UserEmail: "ada@example.com",
	}
}

func TestCreateRejectsInvalidRangeBeforeStoreAccess(t *testing.T) {
	store := newFakeStore()
	svc, hotels := newService(store)

	cases := []struct {
		name     string
		mutate   func(*CreateInput)
	}{
		{"equal dates", func(in *CreateInput) { in.Checkout = in.Checkin }},
		{"reversed dates", func(in *CreateInput) { in.Checkin, in.Checkout = in.Checkout, in.Checkin }},
		{"malformed date", func(in *CreateInput) { in.Checkin = "2024-6-1" }},
		{"zero guests", func(in *CreateInput) { in.Guests = 0 }},
		{"missing hotel id", func(in *CreateInput) { in.HotelID = "" }},
		{"missing user", func(in *CreateInput) { in.UserID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)

			e, ok := AsError(err)
			require.True(t, ok, "expected a typed reservation error")
			assert.Equal(t, CodeInvalidInput, e.Code)
		})
	}

	// Validation failures must never reach the store or the hotel lookup.
	assert.Equal(t, 0, store.reservations)
	assert.Equal(t, 0, hotels.gets)
}

func TestCreateDecrementsOnlyStayNights(t *testing.T) {
	store := newFakeStore()
	store.addNight("h1", "2024-06-01", 100, 5)
	store.addNight("h1", "2024-06-02", 100, 5)
	store.addNight("h1", "2024-06-03", 100, 5)
	svc, _ := newService(store)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Checkout day is not a night of the stay.
	assert.Equal(t, 4, store.rooms("h1", "2024-06-01"))
	assert.Equal(t, 4, store.rooms("h1", "2024-06-02"))
	assert.Equal(t, 5, store.rooms("h1", "2024-06-03"))
}

func TestCreateTotalPriceSumsPerNightPrices(t *testing.T) {
	store := newFakeStore()
	store.addNight("h1", "2024-06-01", 120.5, 1)
	store.addNight("h1", "2024-06-02", 180, 1)
	svc, _ := newService(store)

	id, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	b, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 300.5, b.TotalPrice, 1e-9)
	assert.Equal(t, "Seaside Grand", b.HotelName)
	assert.Equal(t, "u1", b.UserID)
}

func TestCreateFailsOnUnconfiguredNight(t *testing.T) {
	store := newFakeStore()
	store.addNight("h1", "2024-06-01", 100, 5)
	// 2024-06-02 was never configured.
	svc, _ := newService(store)

	_, err := svc.Create(context.Background(), validInput())

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNoAvailability, e.Code)
	assert.Equal(t, "2024-06-02", e.Date)
	// Nothing was decremented, nothing was written.
	assert.Equal(t, 5, store.rooms("h1", "2024-06-01"))
	assert.Empty(t, store.bookings)
}

func TestCreateSoldOutNightAbortsWholeStay(t *testing.T) {
	store := newFakeStore()
	store.addNight("h1", "2024-06-01", 100, 3)
	store.addNight("h1", "2024-06-02", 100, 0)
	store.addNight("h1", "2024-06-03", 100, 3)
	svc, _ := newService(store)

	input := validInput()
	input.Checkout = "2024-06-04"

	_, err := svc.Create(context.Background(), input)

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeSoldOut, e.Code)
	assert.Equal(t, "2024-06-02", e.Date)
	assert.Equal(t, 3, store.rooms("h1", "2024-06-01"))
	assert.Equal(t, 0, store.rooms("h1", "2024-06-02"))
	assert.Equal(t, 3, store.rooms("h1", "2024-06-03"))
	assert.Empty(t, store.bookings)
}

func TestCreateNeverOversells(t *testing.T) {
	const rooms = 3
	store := newFakeStore()
	store.addNight("h1", "2024-06-01", 100, rooms)
	store.addNight("h1", "2024-06-02", 100, rooms)
	svc, _ := newService(store)

	var wg sync.WaitGroup
	errs := make([]error, rooms+1)
	for i := 0; i < rooms+1; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := validInput()
			input.UserID = fmt.Sprintf("u%d", i)
			_, errs[i] = svc.Create(context.Background(), input)
		}(i)
	}
	wg.Wait()

	successes, soldOut := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		e, ok := AsError(err)
		require.True(t, ok, "unexpected error type: %v", err)
		assert.Equal(t, CodeSoldOut, e.Code)
		soldOut++
	}

	assert.Equal(t, rooms, successes)
	assert.Equal(t, 1, soldOut)
	assert.Equal(t, 0, store.rooms("h1", "2024-06-01"))
	assert.Equal(t, 0, store.rooms("h1", "2024-06-02"))
	assert.Len(t, store.bookings, rooms)
}

func TestCreateRegeneratesCodeOnCollision(t *testing.T) {
	store := newFakeStore()
	store.addNight("h1", "2024-06-01", 100, 5)
	store.addNight("h1", "2024-06-02", 100, 5)
	store.collideFirst = 2
	svc, _ := newService(store)

	id, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Sty[A-Z0-9]{4}$`), id)
	assert.Len(t, store.bookings, 1)
}

// exhaustedStore simulates a store whose transaction retries ran out.
type exhaustedStore struct {
	bookingRepo.BookingRepository
}

func (s *exhaustedStore) RunReservation(ctx context.Context, fn func(tx bookingRepo.Tx) error) error {
	return fmt.Errorf("reservation: %w", database.ErrTxnExhausted)
}

func TestCreateMapsExhaustedRetriesToRetryableConflict(t *testing.T) {
	hotels := &fakeHotels{hotels: map[string]*models.Hotel{"h1": {ID: "h1", Name: "Seaside Grand"}}}
	svc := &DefaultService{Repo: &exhaustedStore{}, Hotels: hotels}

	_, err := svc.Create(context.Background(), validInput())

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, e.Code)
	assert.True(t, e.Retryable())
}

func TestCreateUnknownHotel(t *testing.T) {
	store := newFakeStore()
	svc, _ := newService(store)

	input := validInput()
	input.HotelID = "ghost"

	_, err := svc.Create(context.Background(), input)

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeHotelNotFound, e.Code)
	assert.Equal(t, 0, store.reservations)
}
