package models

// BookingRequest is a confirmed multi-ticket booking: an event referenced
// by display name plus the number of tickets wanted. Produced by the
// natural-language parsing front end, which is outside this service.
type BookingRequest struct {
	EventName string `json:"eventName"`
	Tickets   int    `json:"tickets"`
}

// BookingResult reports a fulfilled booking.
type BookingResult struct {
	Success          bool   `json:"success"`
	EventID          int64  `json:"eventId"`
	EventName        string `json:"eventName"`
	Purchased        int    `json:"purchased"`
	RemainingTickets int    `json:"remainingTickets"`
	Message          string `json:"message"`
}
