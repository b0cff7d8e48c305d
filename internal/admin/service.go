package admin

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ms-boxoffice/internal/logger"
	"ms-boxoffice/internal/models"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CatalogStore interface {
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// AdminService owns the catalog administration path: it loads initial
// inventory before an event starts taking purchases. It never touches a
// live counter through anything but row creation.
type AdminService struct {
	DB     CatalogStore
	Logger *logger.Logger
}

func NewAdminService(db CatalogStore, log *logger.Logger) *AdminService {
	return &AdminService{DB: db, Logger: log}
}

// CreateEvent validates and inserts a new event row.
func (s *AdminService) CreateEvent(ctx context.Context, name, date string, tickets int) (*models.Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: event name is required", models.ErrInvalidInput)
	}
	if !datePattern.MatchString(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", models.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be a valid calendar date", models.ErrInvalidInput)
	}
	if tickets < 0 {
		return nil, fmt.Errorf("%w: tickets must be >= 0", models.ErrInvalidInput)
	}

	created, err := s.DB.CreateEvent(ctx, models.Event{
		Name:             strings.TrimSpace(name),
		Date:             date,
		TicketsRemaining: tickets,
	})
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("DATABASE", fmt.Sprintf("create event %q failed: %v", name, err))
		}
		return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
	}

	if s.Logger != nil {
		s.Logger.LogDatabase("INSERT", "events", fmt.Sprintf("event %q (%s) with %d tickets", created.Name, created.Date, tickets))
	}
	return created, nil
}

// ListEvents returns the full catalog for the admin dashboard.
func (s *AdminService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.DB.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
	}
	return events, nil
}
