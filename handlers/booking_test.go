package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayease/middleware"
	"stayease/models"
	"stayease/services/booking"
	"stayease/utils"
)

type stubBookingService struct {
	createErr error
	createID  string
	lastInput booking.CreateInput

	booking *models.Booking
}

func (s *stubBookingService) Create(ctx context.Context, input booking.CreateInput) (string, error) {
	s.lastInput = input
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.createID, nil
}

func (s *stubBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	if s.booking == nil || s.booking.ID != bookingID {
		return nil, errors.New("booking not found")
	}
	return s.booking, nil
}

func (s *stubBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if s.booking == nil || s.booking.UserID != userID {
		return []models.Booking{}, nil
	}
	return []models.Booking{*s.booking}, nil
}

func postBooking(t *testing.T, svc booking.Service, uid, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, uid)
	c.Set(middleware.CtxUserName, "Ada")
	c.Set(middleware.CtxUserEmail, "ada@example.com")

	NewBookingHandler(svc).CreateBookingHandler(c)
	return w
}

const validBookingBody = `{"hotelId":"h1","checkin":"2024-06-01","checkout":"2024-06-03","guests":2}`

func TestCreateBookingReturnsCreatedWithID(t *testing.T) {
	svc := &stubBookingService{createID: "StyAB12"}

	w := postBooking(t, svc, "u1", validBookingBody)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "StyAB12", resp["bookingId"])

	// Identity comes from the request context, never from the body.
	assert.Equal(t, "u1", svc.lastInput.UserID)
	assert.Equal(t, "Ada", svc.lastInput.UserName)
	assert.Equal(t, "ada@example.com", svc.lastInput.UserEmail)
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	svc := &stubBookingService{createID: "StyAB12"}

	w := postBooking(t, svc, "u1", `{"hotelId":"h1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastInput.HotelID)
}

func TestCreateBookingErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &booking.Error{Code: booking.CodeInvalidInput, Message: "bad dates"}, http.StatusBadRequest},
		{"unknown hotel", &booking.Error{Code: booking.CodeHotelNotFound, Message: "no such hotel"}, http.StatusNotFound},
		{"unconfigured night", &booking.Error{Code: booking.CodeNoAvailability, Date: "2024-06-02", Message: "night not available"}, http.StatusConflict},
		{"sold out night", &booking.Error{Code: booking.CodeSoldOut, Date: "2024-06-01", Message: "sold out"}, http.StatusConflict},
		{"retries exhausted", &booking.Error{Code: booking.CodeConflict, Message: "contention"}, http.StatusServiceUnavailable},
		{"permission denied", &booking.Error{Code: booking.CodePermission, Message: "denied"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postBooking(t, &stubBookingService{createErr: tc.err}, "u1", validBookingBody)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestCreateBookingConflictCarriesOffendingDate(t *testing.T) {
	svc := &stubBookingService{createErr: &booking.Error{
		Code: booking.CodeSoldOut, Date: "2024-06-02", Message: "sold out",
	}}

	w := postBooking(t, svc, "u1", validBookingBody)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-02", resp.Date)
}

func getBooking(t *testing.T, svc booking.Service, uid, bookingID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/bookings/"+bookingID, nil)
	c.Params = gin.Params{{Key: "bookingID", Value: bookingID}}
	c.Set(middleware.CtxUserID, uid)

	NewBookingHandler(svc).GetBookingHandler(c)
	return w
}

func TestGetBookingOwnerOnly(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "StyAB12", UserID: "u1", HotelID: "h1"}}

	w := getBooking(t, svc, "u1", "StyAB12")
	require.Equal(t, http.StatusOK, w.Code)
	var b models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, "StyAB12", b.ID)

	// Someone else's booking is indistinguishable from a missing one.
	w = getBooking(t, svc, "u2", "StyAB12")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = getBooking(t, svc, "u1", "StyZZZZ")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
