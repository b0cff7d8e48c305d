package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"ms-boxoffice/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListEvents returns every event in the catalog, date ascending. Reads a
// committed snapshot; safe to call while purchases are in flight.
func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("date ASC").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent fetches one event row by id.
func (d *DB) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}
	return &event, nil
}

// CreateEvent inserts a new catalog row and returns it with the
// assigned id. Admin path only; never called once an event is taking
// purchases.
func (d *DB) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	_, err := d.Bun.NewInsert().
		Model(&event).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

// ReserveTickets atomically takes quantity tickets off an event's
// counter. The whole read-check-decrement sequence runs in one storage
// transaction, and the UPDATE re-validates availability in its WHERE
// clause, so concurrent handlers against the same row can never
// oversell. Returns the event with the post-decrement counter.
//
// Sentinel errors: models.ErrEventNotFound, models.ErrSoldOut (the
// pre-check fast path), models.ErrSoldOutRace (a concurrent purchase
// drained the row between the read and the write).
func (d *DB) ReserveTickets(ctx context.Context, eventID int64, quantity int) (*models.Event, error) {
	var event models.Event

	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&event).
			Where("id = ?", eventID).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrEventNotFound
			}
			return fmt.Errorf("read event %d: %w", eventID, err)
		}

		// Fast-path rejection; saves a doomed write but is not the
		// correctness guarantee.
		if event.TicketsRemaining < quantity {
			return models.ErrSoldOut
		}

		res, err := tx.NewUpdate().
			Model((*models.Event)(nil)).
			Set("tickets_remaining = tickets_remaining - ?", quantity).
			Where("id = ?", eventID).
			Where("tickets_remaining >= ?", quantity).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("decrement event %d: %w", eventID, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			// Another handler consumed the stock between our read and
			// this write.
			return models.ErrSoldOutRace
		}

		event.TicketsRemaining -= quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}
