package models

import "errors"

// Purchase outcome taxonomy. These are expected control-flow results,
// not faults; handlers map them to HTTP status codes.
var (
	ErrInvalidInput  = errors.New("invalid event id or quantity")
	ErrEventNotFound = errors.New("event not found")
	ErrSoldOut       = errors.New("tickets sold out")
	ErrSoldOutRace   = errors.New("tickets sold out during transaction")
	ErrTransaction   = errors.New("transaction failed")
)
