package booking

import (
	"context"
	"fmt"
	"strings"

	"ms-boxoffice/internal/logger"
	"ms-boxoffice/internal/models"
)

type CatalogClient interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	Purchase(ctx context.Context, eventID int64, quantity int) (*models.PurchaseConfirmation, error)
}

// BookingService fulfills confirmed multi-ticket bookings. It resolves
// the event by name against the catalog, does an advisory availability
// check, then places one atomic multi-unit purchase. Because the whole
// booking is a single conditional decrement, a contended booking either
// fully succeeds or fully fails; there is no partial fulfillment.
type BookingService struct {
	Catalog CatalogClient
	Logger  *logger.Logger
}

func NewBookingService(catalog CatalogClient, log *logger.Logger) *BookingService {
	return &BookingService{Catalog: catalog, Logger: log}
}

// ResolveEvent finds an event by case-insensitive exact name match.
func (s *BookingService) ResolveEvent(ctx context.Context, eventName string) (*models.Event, error) {
	events, err := s.Catalog.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		if strings.EqualFold(events[i].Name, eventName) {
			return &events[i], nil
		}
	}
	return nil, models.ErrEventNotFound
}

// ConfirmBooking books req.Tickets tickets for the named event.
func (s *BookingService) ConfirmBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	if strings.TrimSpace(req.EventName) == "" || req.Tickets <= 0 {
		return nil, models.ErrInvalidInput
	}

	event, err := s.ResolveEvent(ctx, req.EventName)
	if err != nil {
		return nil, err
	}

	// Advisory only: the listing can be stale by the time the purchase
	// runs. The purchase call re-validates atomically.
	if event.TicketsRemaining < req.Tickets {
		return nil, models.ErrSoldOut
	}

	confirmation, err := s.Catalog.Purchase(ctx, event.ID, req.Tickets)
	if err != nil {
		if s.Logger != nil {
			s.Logger.LogBooking("FAILED", event.Name, fmt.Sprintf("%d ticket(s): %v", req.Tickets, err))
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.LogBooking("CONFIRMED", event.Name, fmt.Sprintf("%d ticket(s), %d remaining", req.Tickets, confirmation.RemainingTickets))
	}

	return &models.BookingResult{
		Success:          true,
		EventID:          event.ID,
		EventName:        event.Name,
		Purchased:        req.Tickets,
		RemainingTickets: confirmation.RemainingTickets,
		Message:          fmt.Sprintf("Successfully booked %d ticket(s) for %s", req.Tickets, event.Name),
	}, nil
}
