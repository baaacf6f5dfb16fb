package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateCanonicalOnly(t *testing.T) {
	_, err := ParseDate("2024-06-01")
	assert.NoError(t, err)

	for _, bad := range []string{"2024-6-1", "01-06-2024", "2024/06/01", "2024-06-01T00:00", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestDaysInclusive(t *testing.T) {
	days, err := DaysInclusive("2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, days)

	single, err := DaysInclusive("2024-06-01", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01"}, single)

	_, err = DaysInclusive("2024-06-03", "2024-06-01")
	assert.Error(t, err)
}

func TestDaysInclusiveCrossesMonthBoundary(t *testing.T) {
	days, err := DaysInclusive("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	// 2024 is a leap year.
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, days)
}

func TestNightsExcludesCheckoutDay(t *testing.T) {
	nights, err := Nights("2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, nights)

	one, err := Nights("2024-06-01", "2024-06-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01"}, one)
}

func TestNightsRejectsNonPositiveStays(t *testing.T) {
	_, err := Nights("2024-06-01", "2024-06-01")
	assert.Error(t, err)

	_, err = Nights("2024-06-03", "2024-06-01")
	assert.Error(t, err)
}
