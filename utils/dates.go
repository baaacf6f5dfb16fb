package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for all ledger keys. It is
// fixed-width and zero-padded, so lexicographic comparison of two date
// strings matches chronological order.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar day. Inputs that parse but are not
// in canonical zero-padded form are rejected, since the ledger compares dates
// as strings.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if t.Format(DateLayout) != s {
		return time.Time{}, fmt.Errorf("date %q is not in canonical YYYY-MM-DD form", s)
	}
	return t, nil
}

// DaysInclusive enumerates every calendar day from start through end, both
// included. Both bounds must be valid and start must not be after end.
func DaysInclusive(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("start %s is after end %s", start, end)
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// Nights enumerates the nights of a stay: every day in [checkin, checkout).
// The checkout day itself is not a night, so a one-night stay yields exactly
// the checkin day. Checkin must be strictly before checkout.
func Nights(checkin, checkout string) ([]string, error) {
	in, err := ParseDate(checkin)
	if err != nil {
		return nil, err
	}
	out, err := ParseDate(checkout)
	if err != nil {
		return nil, err
	}
	if !in.Before(out) {
		return nil, fmt.Errorf("checkin %s must be before checkout %s", checkin, checkout)
	}

	var nights []string
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d.Format(DateLayout))
	}
	return nights, nil
}
