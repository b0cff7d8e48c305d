package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-boxoffice/internal/booking"
	"ms-boxoffice/internal/logger"
	"ms-boxoffice/internal/models"
)

type Handler struct {
	BookingService *booking.BookingService
	Logger         *logger.Logger
}

func NewHandler(bookingService *booking.BookingService, log *logger.Logger) *Handler {
	return &Handler{
		BookingService: bookingService,
		Logger:         log,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// ConfirmBooking handles POST /bookings/confirm. Auth middleware has
// already verified the bearer token by the time this runs.
func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}

	result, err := h.BookingService.ConfirmBooking(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing eventName or tickets."})
		case errors.Is(err, models.ErrEventNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("Event not found: %s", req.EventName)})
		case errors.Is(err, models.ErrSoldOut), errors.Is(err, models.ErrSoldOutRace):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "Not enough tickets available."})
		default:
			if h.Logger != nil {
				h.Logger.Error("API", fmt.Sprintf("ConfirmBooking: %v", err))
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to confirm booking."})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
