package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-boxoffice/internal/booking"
	"ms-boxoffice/internal/models"
)

// MockCatalogClient is a mock implementation of the CatalogClient interface
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockCatalogClient) Purchase(ctx context.Context, eventID int64, quantity int) (*models.PurchaseConfirmation, error) {
	args := m.Called(ctx, eventID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseConfirmation), args.Error(1)
}

func catalogWith(events ...models.Event) *MockCatalogClient {
	m := new(MockCatalogClient)
	m.On("ListEvents", mock.Anything).Return(events, nil)
	return m
}

func TestConfirmBookingCaseInsensitiveResolve(t *testing.T) {
	catalog := catalogWith(
		models.Event{ID: 1, Name: "Jazz Night", Date: "2026-09-15", TicketsRemaining: 10},
		models.Event{ID: 2, Name: "Theatre Gala", Date: "2026-10-01", TicketsRemaining: 5},
	)
	catalog.On("Purchase", mock.Anything, int64(1), 2).Return(&models.PurchaseConfirmation{
		EventID: 1, EventName: "Jazz Night", Quantity: 2, RemainingTickets: 8,
	}, nil)

	svc := booking.NewBookingService(catalog, nil)

	result, err := svc.ConfirmBooking(context.Background(), models.BookingRequest{
		EventName: "jazz NIGHT",
		Tickets:   2,
	})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), result.EventID)
	assert.Equal(t, 2, result.Purchased)
	assert.Equal(t, 8, result.RemainingTickets)
	catalog.AssertExpectations(t)
}

func TestConfirmBookingSinglePurchaseCall(t *testing.T) {
	catalog := catalogWith(models.Event{ID: 1, Name: "Jazz Night", TicketsRemaining: 10})
	catalog.On("Purchase", mock.Anything, int64(1), 4).Return(&models.PurchaseConfirmation{
		EventID: 1, EventName: "Jazz Night", Quantity: 4, RemainingTickets: 6,
	}, nil)

	svc := booking.NewBookingService(catalog, nil)

	_, err := svc.ConfirmBooking(context.Background(), models.BookingRequest{
		EventName: "Jazz Night",
		Tickets:   4,
	})

	assert.NoError(t, err)
	// The whole booking is one atomic multi-unit purchase, never a loop
	// of single-unit calls that could partially fulfill.
	catalog.AssertNumberOfCalls(t, "Purchase", 1)
}

func TestConfirmBookingEventNotFound(t *testing.T) {
	catalog := catalogWith(models.Event{ID: 1, Name: "Jazz Night", TicketsRemaining: 10})
	svc := booking.NewBookingService(catalog, nil)

	_, err := svc.ConfirmBooking(context.Background(), models.BookingRequest{
		EventName: "Rock Festival",
		Tickets:   1,
	})

	assert.ErrorIs(t, err, models.ErrEventNotFound)
	catalog.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmBookingAdvisoryCheckRejects(t *testing.T) {
	catalog := catalogWith(models.Event{ID: 1, Name: "Jazz Night", TicketsRemaining: 3})
	svc := booking.NewBookingService(catalog, nil)

	_, err := svc.ConfirmBooking(context.Background(), models.BookingRequest{
		EventName: "Jazz Night",
		Tickets:   5,
	})

	assert.ErrorIs(t, err, models.ErrSoldOut)
	catalog.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmBookingStaleAdvisoryLosesRace(t *testing.T) {
	// The advisory check passes on a stale listing; the purchase itself
	// still fails safely.
	catalog := catalogWith(models.Event{ID: 1, Name: "Jazz Night", TicketsRemaining: 5})
	catalog.On("Purchase", mock.Anything, int64(1), 5).Return(nil, models.ErrSoldOut)

	svc := booking.NewBookingService(catalog, nil)

	_, err := svc.ConfirmBooking(context.Background(), models.BookingRequest{
		EventName: "Jazz Night",
		Tickets:   5,
	})

	assert.ErrorIs(t, err, models.ErrSoldOut)
}

func TestConfirmBookingInvalidInput(t *testing.T) {
	catalog := new(MockCatalogClient)
	svc := booking.NewBookingService(catalog, nil)

	for _, req := range []models.BookingRequest{
		{EventName: "", Tickets: 2},
		{EventName: "   ", Tickets: 2},
		{EventName: "Jazz Night", Tickets: 0},
		{EventName: "Jazz Night", Tickets: -1},
	} {
		_, err := svc.ConfirmBooking(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}

	catalog.AssertNotCalled(t, "ListEvents", mock.Anything)
}
