package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayease/models"
)

// fakeLedger keeps availability documents in a map keyed like the store does.
type fakeLedger struct {
	records map[string]models.AvailabilityRecord
	writes  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]models.AvailabilityRecord)}
}

func (f *fakeLedger) SetRange(ctx context.Context, records []models.AvailabilityRecord) error {
	f.writes++
	for _, rec := range records {
		f.records[rec.ID] = rec
	}
	return nil
}

func (f *fakeLedger) GetRange(ctx context.Context, hotelID, startDate, endDate string) ([]models.AvailabilityRecord, error) {
	var out []models.AvailabilityRecord
	for _, rec := range f.records {
		if rec.HotelID == hotelID && rec.Date >= startDate && rec.Date <= endDate {
			out = append(out, rec)
		}
	}
	return out, nil
}

func TestSetRangeRejectsBadInputBeforeStoreAccess(t *testing.T) {
	repo := newFakeLedger()
	svc := &DefaultService{Repo: repo}
	ctx := context.Background()

	cases := []struct {
		name                           string
		hotelID, start, end            string
		price                          float64
		rooms                          int
	}{
		{"zero price", "h1", "2024-06-01", "2024-06-02", 0, 3},
		{"negative price", "h1", "2024-06-01", "2024-06-02", -10, 3},
		{"negative rooms", "h1", "2024-06-01", "2024-06-02", 100, -1},
		{"reversed range", "h1", "2024-06-02", "2024-06-01", 100, 3},
		{"malformed date", "h1", "2024-6-1", "2024-06-02", 100, 3},
		{"missing hotel", "", "2024-06-01", "2024-06-02", 100, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SetRange(ctx, tc.hotelID, tc.start, tc.end, tc.price, tc.rooms)
			assert.True(t, IsInputError(err), "expected input error, got %v", err)
		})
	}
	assert.Equal(t, 0, repo.writes)
}

func TestSetRangeWritesOneRecordPerDayInclusive(t *testing.T) {
	repo := newFakeLedger()
	svc := &DefaultService{Repo: repo}

	err := svc.SetRange(context.Background(), "h1", "2024-06-01", "2024-06-03", 150, 4)
	require.NoError(t, err)

	assert.Len(t, repo.records, 3)
	for _, day := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		rec, ok := repo.records[models.NightKey("h1", day)]
		require.True(t, ok, "missing record for %s", day)
		assert.Equal(t, "h1", rec.HotelID)
		assert.Equal(t, day, rec.Date)
		assert.Equal(t, 150.0, rec.Price)
		assert.Equal(t, 4, rec.RoomsAvailable)
	}
}

func TestSetRangeIsIdempotent(t *testing.T) {
	repo := newFakeLedger()
	svc := &DefaultService{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.SetRange(ctx, "h1", "2024-06-01", "2024-06-02", 150, 4))
	first := make(map[string]models.AvailabilityRecord, len(repo.records))
	for k, v := range repo.records {
		first[k] = v
	}

	require.NoError(t, svc.SetRange(ctx, "h1", "2024-06-01", "2024-06-02", 150, 4))
	assert.Equal(t, first, repo.records)
}

func TestSetRangeOverwritesOverlap(t *testing.T) {
	repo := newFakeLedger()
	svc := &DefaultService{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.SetRange(ctx, "h1", "2024-06-01", "2024-06-03", 100, 5))
	require.NoError(t, svc.SetRange(ctx, "h1", "2024-06-02", "2024-06-04", 200, 1))

	// Overlap takes the later write wholesale; it is a set, not a merge.
	assert.Equal(t, 100.0, repo.records[models.NightKey("h1", "2024-06-01")].Price)
	assert.Equal(t, 200.0, repo.records[models.NightKey("h1", "2024-06-02")].Price)
	assert.Equal(t, 1, repo.records[models.NightKey("h1", "2024-06-03")].RoomsAvailable)
	assert.Equal(t, 200.0, repo.records[models.NightKey("h1", "2024-06-04")].Price)
}

func TestGetRangeEmptyMeansNotConfigured(t *testing.T) {
	repo := newFakeLedger()
	svc := &DefaultService{Repo: repo}

	records, err := svc.GetRange(context.Background(), "h1", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetRangeValidatesBounds(t *testing.T) {
	svc := &DefaultService{Repo: newFakeLedger()}

	_, err := svc.GetRange(context.Background(), "h1", "bad", "2024-06-30")
	assert.True(t, IsInputError(err))
}
