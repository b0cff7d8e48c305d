package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-boxoffice/internal/logger"
	"ms-boxoffice/internal/models"
)

type StoreLayer interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	ReserveTickets(ctx context.Context, eventID int64, quantity int) (*models.Event, error)
}

type SoldOutFlag interface {
	IsSoldOut(ctx context.Context, eventID int64) bool
	MarkSoldOut(ctx context.Context, eventID int64) error
}

type PurchasePublisher interface {
	PublishTicketPurchased(confirmation models.PurchaseConfirmation) error
}

type ReceiptGenerator interface {
	GenerateQR(confirmation models.PurchaseConfirmation) ([]byte, error)
}

// PurchaseService coordinates a purchase attempt: validate input, then
// one transactional conditional decrement against the store. The store
// transaction is the only serialization point; the service itself holds
// no locks, so any number of handlers can run Purchase concurrently.
type PurchaseService struct {
	DB       StoreLayer
	Cache    SoldOutFlag       // optional, advisory only
	Kafka    PurchasePublisher // optional
	Receipts ReceiptGenerator  // optional
	Logger   *logger.Logger
	Timeout  time.Duration
}

func NewPurchaseService(db StoreLayer, cache SoldOutFlag, kafka PurchasePublisher, receipts ReceiptGenerator, log *logger.Logger) *PurchaseService {
	return &PurchaseService{
		DB:       db,
		Cache:    cache,
		Kafka:    kafka,
		Receipts: receipts,
		Logger:   log,
		Timeout:  5 * time.Second,
	}
}

// ListEvents returns the catalog, date ascending.
func (s *PurchaseService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.DB.ListEvents(ctx)
	if err != nil {
		s.logError("DATABASE", fmt.Sprintf("failed to list events: %v", err))
		return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
	}
	return events, nil
}

// GetEvent returns one catalog row.
func (s *PurchaseService) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	if eventID <= 0 {
		return nil, models.ErrInvalidInput
	}
	event, err := s.DB.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, err
		}
		s.logError("DATABASE", fmt.Sprintf("failed to get event %d: %v", eventID, err))
		return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
	}
	return event, nil
}

// Purchase attempts to buy quantity tickets for an event. At most once:
// a failed attempt changes nothing and is never retried here. Returns a
// confirmation on success or one of the sentinel errors in models.
func (s *PurchaseService) Purchase(ctx context.Context, eventID int64, quantity int) (*models.PurchaseConfirmation, error) {
	// Reject bad input before touching the store; no transaction opens.
	if eventID <= 0 || quantity <= 0 {
		return nil, models.ErrInvalidInput
	}

	// Advisory short-circuit. Stale at worst for the cache TTL; the
	// conditional decrement below is the real guard.
	if s.Cache != nil && s.Cache.IsSoldOut(ctx, eventID) {
		return nil, models.ErrSoldOut
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	event, err := s.DB.ReserveTickets(ctx, eventID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound),
			errors.Is(err, models.ErrSoldOut),
			errors.Is(err, models.ErrSoldOutRace):
			// Expected outcomes, not faults.
			return nil, err
		default:
			s.logError("DATABASE", fmt.Sprintf("purchase for event %d failed: %v", eventID, err))
			return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
		}
	}

	confirmation := models.PurchaseConfirmation{
		ConfirmationID:   uuid.New().String(),
		EventID:          event.ID,
		EventName:        event.Name,
		Quantity:         quantity,
		RemainingTickets: event.TicketsRemaining,
		PurchasedAt:      time.Now().UTC(),
	}

	if s.Receipts != nil {
		qrBytes, err := s.Receipts.GenerateQR(confirmation)
		if err != nil {
			// The purchase is committed; a missing receipt is not a
			// reason to report failure.
			s.logError("RECEIPT", fmt.Sprintf("failed to generate QR for %s: %v", confirmation.ConfirmationID, err))
		} else {
			confirmation.QRReceipt = qrBytes
		}
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishTicketPurchased(confirmation); err != nil {
			s.logError("KAFKA", fmt.Sprintf("publish ticket-purchased failed: %v", err))
		}
	}

	if s.Cache != nil && event.TicketsRemaining == 0 {
		if err := s.Cache.MarkSoldOut(ctx, event.ID); err != nil {
			s.logError("CACHE", fmt.Sprintf("mark sold out for event %d failed: %v", event.ID, err))
		}
	}

	if s.Logger != nil {
		s.Logger.LogPurchase("COMMIT", event.ID, fmt.Sprintf("%d ticket(s), %d remaining", quantity, event.TicketsRemaining))
	}

	return &confirmation, nil
}

func (s *PurchaseService) logError(category, message string) {
	if s.Logger != nil {
		s.Logger.Error(category, message)
	}
}
