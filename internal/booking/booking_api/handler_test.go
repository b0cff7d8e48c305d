package booking_api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-boxoffice/internal/auth"
	"ms-boxoffice/internal/booking"
	"ms-boxoffice/internal/booking/booking_api"
	"ms-boxoffice/internal/models"
)

const testSecret = "test-secret"

// stubCatalog returns a fixed catalog and a fixed purchase outcome.
type stubCatalog struct {
	events      []models.Event
	purchaseErr error
}

func (s *stubCatalog) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events, nil
}

func (s *stubCatalog) Purchase(ctx context.Context, eventID int64, quantity int) (*models.PurchaseConfirmation, error) {
	if s.purchaseErr != nil {
		return nil, s.purchaseErr
	}
	for _, ev := range s.events {
		if ev.ID == eventID {
			return &models.PurchaseConfirmation{
				EventID:          ev.ID,
				EventName:        ev.Name,
				Quantity:         quantity,
				RemainingTickets: ev.TicketsRemaining - quantity,
			}, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func newRouter(catalog *stubCatalog) *chi.Mux {
	svc := booking.NewBookingService(catalog, nil)
	handler := booking_api.NewHandler(svc, nil)

	r := chi.NewRouter()
	r.Route("/bookings", func(r chi.Router) {
		r.Use(auth.RequireAuth(testSecret))
		r.Post("/confirm", handler.ConfirmBooking)
	})
	return r
}

func signedToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user001",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestConfirmBookingRequiresAuth(t *testing.T) {
	router := newRouter(&stubCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/bookings/confirm", strings.NewReader(`{"eventName":"Jazz Night","tickets":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestConfirmBookingRejectsBadToken(t *testing.T) {
	router := newRouter(&stubCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/bookings/confirm", strings.NewReader(`{"eventName":"Jazz Night","tickets":2}`))
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestConfirmBookingSuccess(t *testing.T) {
	router := newRouter(&stubCatalog{events: []models.Event{
		{ID: 1, Name: "Jazz Night", Date: "2026-09-15", TicketsRemaining: 10},
	}})

	req := httptest.NewRequest(http.MethodPost, "/bookings/confirm", strings.NewReader(`{"eventName":"jazz night","tickets":2}`))
	req.Header.Set("Authorization", "Bearer "+signedToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"purchased":2`)
}

func TestConfirmBookingStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		catalog    *stubCatalog
		wantStatus int
	}{
		{
			"missing fields", `{}`,
			&stubCatalog{}, http.StatusBadRequest,
		},
		{
			"unknown event", `{"eventName":"Rock Festival","tickets":1}`,
			&stubCatalog{events: []models.Event{{ID: 1, Name: "Jazz Night", TicketsRemaining: 5}}},
			http.StatusNotFound,
		},
		{
			"not enough tickets", `{"eventName":"Jazz Night","tickets":9}`,
			&stubCatalog{events: []models.Event{{ID: 1, Name: "Jazz Night", TicketsRemaining: 5}}},
			http.StatusConflict,
		},
		{
			"purchase conflict", `{"eventName":"Jazz Night","tickets":5}`,
			&stubCatalog{
				events:      []models.Event{{ID: 1, Name: "Jazz Night", TicketsRemaining: 5}},
				purchaseErr: models.ErrSoldOutRace,
			},
			http.StatusConflict,
		},
		{
			"infrastructure failure", `{"eventName":"Jazz Night","tickets":5}`,
			&stubCatalog{
				events:      []models.Event{{ID: 1, Name: "Jazz Night", TicketsRemaining: 5}},
				purchaseErr: models.ErrTransaction,
			},
			http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(tc.catalog)

			req := httptest.NewRequest(http.MethodPost, "/bookings/confirm", strings.NewReader(tc.body))
			req.Header.Set("Authorization", "Bearer "+signedToken(t))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
