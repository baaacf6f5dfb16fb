package booking

import (
	"errors"
	"fmt"
)

// Error codes returned by the reservation engine. Validation and business
// codes are expected outcomes; conflict and permission codes are
// infrastructure failures the caller may retry or must surface.
const (
	CodeInvalidInput  = "invalidInput"
	CodeHotelNotFound = "hotelNotFound"
	// CodeNoAvailability: a night in the stay was never configured.
	CodeNoAvailability = "noAvailability"
	// CodeSoldOut: a night in the stay has no room left.
	CodeSoldOut = "soldOut"
	// CodeConflict: concurrent transactions kept colliding past the retry
	// budget. Retryable by the caller.
	CodeConflict = "txnConflict"
	// CodePermission: the store rejected the operation. Fatal.
	CodePermission = "permissionDenied"
)

// Error is the typed failure returned by the reservation engine. Date names
// the offending night for availability errors so callers can highlight it.
type Error struct {
	Code    string
	Date    string
	Message string
}

func (e *Error) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Date, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Retryable reports whether the caller may usefully retry the operation.
func (e *Error) Retryable() bool {
	return e.Code == CodeConflict
}

func newInvalidInput(msg string) error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

func newNoAvailability(date string) error {
	return &Error{Code: CodeNoAvailability, Date: date, Message: "no availability configured for this date"}
}

func newSoldOut(date string) error {
	return &Error{Code: CodeSoldOut, Date: date, Message: "no rooms left for this date"}
}

// AsError unwraps err into a reservation Error, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
