package hotel

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidInput = "invalidInput"
	CodeNotFound     = "hotelNotFound"
	// CodeDuplicateReview: the user already reviewed this hotel.
	CodeDuplicateReview = "duplicateReview"
	CodeConflict        = "txnConflict"
	CodePermission      = "permissionDenied"
)

// Error is the typed failure returned by the hotel service.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError unwraps err into a hotel Error, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
