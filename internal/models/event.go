package models

import (
	"github.com/uptrace/bun"
)

// Event is a row in the shared events catalog. TicketsRemaining is the
// canonical inventory counter: it only decreases through the purchase
// coordinator's conditional decrement, and only increases through the
// admin creation/restock path.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	Name             string `bun:"name,notnull" json:"name"`
	Date             string `bun:"date,notnull" json:"date"` // YYYY-MM-DD
	TicketsRemaining int    `bun:"tickets_remaining,notnull" json:"ticketsRemaining"`
}
