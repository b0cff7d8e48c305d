package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-boxoffice/internal/admin"
	"ms-boxoffice/internal/models"
)

// MockCatalogStore is a mock implementation of the CatalogStore interface
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockCatalogStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func TestCreateEvent(t *testing.T) {
	mockDB := new(MockCatalogStore)
	svc := admin.NewAdminService(mockDB, nil)

	mockDB.On("CreateEvent", mock.Anything, mock.MatchedBy(func(ev models.Event) bool {
		return ev.Name == "Jazz Night" && ev.Date == "2026-09-15" && ev.TicketsRemaining == 40
	})).Return(&models.Event{ID: 1, Name: "Jazz Night", Date: "2026-09-15", TicketsRemaining: 40}, nil)

	created, err := svc.CreateEvent(context.Background(), "Jazz Night", "2026-09-15", 40)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	mockDB.AssertExpectations(t)
}

func TestCreateEventTrimsName(t *testing.T) {
	mockDB := new(MockCatalogStore)
	svc := admin.NewAdminService(mockDB, nil)

	mockDB.On("CreateEvent", mock.Anything, mock.MatchedBy(func(ev models.Event) bool {
		return ev.Name == "Jazz Night"
	})).Return(&models.Event{ID: 1, Name: "Jazz Night"}, nil)

	_, err := svc.CreateEvent(context.Background(), "  Jazz Night  ", "2026-09-15", 40)
	assert.NoError(t, err)
}

func TestCreateEventValidation(t *testing.T) {
	mockDB := new(MockCatalogStore)
	svc := admin.NewAdminService(mockDB, nil)

	cases := []struct {
		name    string
		event   string
		date    string
		tickets int
	}{
		{"empty name", "", "2026-09-15", 10},
		{"blank name", "   ", "2026-09-15", 10},
		{"bad date format", "Jazz Night", "15-09-2026", 10},
		{"not a date", "Jazz Night", "2026-13-45", 10},
		{"negative tickets", "Jazz Night", "2026-09-15", -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), tc.event, tc.date, tc.tickets)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}

	mockDB.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateEventZeroTicketsAllowed(t *testing.T) {
	mockDB := new(MockCatalogStore)
	svc := admin.NewAdminService(mockDB, nil)

	mockDB.On("CreateEvent", mock.Anything, mock.Anything).Return(&models.Event{ID: 2, TicketsRemaining: 0}, nil)

	_, err := svc.CreateEvent(context.Background(), "Waitlist Only", "2026-09-15", 0)
	assert.NoError(t, err)
}

func TestCreateEventStoreFailure(t *testing.T) {
	mockDB := new(MockCatalogStore)
	svc := admin.NewAdminService(mockDB, nil)

	mockDB.On("CreateEvent", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.CreateEvent(context.Background(), "Jazz Night", "2026-09-15", 10)
	assert.ErrorIs(t, err, models.ErrTransaction)
}
