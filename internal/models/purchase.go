package models

import "time"

// PurchaseConfirmation is the payload returned for a committed
// purchase. It is ephemeral: confirmations are never persisted, the
// QR receipt is the buyer's proof of purchase.
type PurchaseConfirmation struct {
	ConfirmationID   string    `json:"confirmationId"`
	EventID          int64     `json:"eventId"`
	EventName        string    `json:"eventName"`
	Quantity         int       `json:"quantity"`
	RemainingTickets int       `json:"remainingTickets"`
	PurchasedAt      time.Time `json:"purchasedAt"`
	QRReceipt        []byte    `json:"qrReceipt,omitempty"` // PNG bytes, base64 in JSON
}
