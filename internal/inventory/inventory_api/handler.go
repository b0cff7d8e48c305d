package inventory_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-boxoffice/internal/inventory"
	"ms-boxoffice/internal/logger"
	"ms-boxoffice/internal/models"
)

// Handler is the HTTP boundary for the inventory engine. It validates
// input, delegates to the purchase service and maps every outcome to a
// status code; no inventory logic lives here.
type Handler struct {
	PurchaseService *inventory.PurchaseService
	Logger          *logger.Logger
}

func NewHandler(purchaseService *inventory.PurchaseService, log *logger.Logger) *Handler {
	return &Handler{
		PurchaseService: purchaseService,
		Logger:          log,
	}
}

type purchaseRequest struct {
	// Pointer so an explicit zero is distinguishable from an absent
	// field; only the latter defaults to 1.
	Quantity *int `json:"quantity"`
}

type purchaseResponse struct {
	Success          bool   `json:"success"`
	EventID          int64  `json:"eventId"`
	EventName        string `json:"eventName"`
	RemainingTickets int    `json:"remainingTickets"`
	ConfirmationID   string `json:"confirmationId"`
	QRReceipt        []byte `json:"qrReceipt,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListEvents handles GET /events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.PurchaseService.ListEvents(r.Context())
	if err != nil {
		h.logError(fmt.Sprintf("ListEvents: %v", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal server error occurred while retrieving events."})
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// PurchaseTicket handles POST /events/{id}/purchase. Body is optional;
// an empty body means quantity 1.
func (h *Handler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	eventID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || eventID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid event ID provided."})
		return
	}

	quantity := 1
	if r.Body != nil && r.ContentLength != 0 {
		var req purchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
			return
		}
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
	}

	confirmation, err := h.PurchaseService.Purchase(r.Context(), eventID, quantity)
	if err != nil {
		h.writePurchaseError(w, eventID, err)
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{
		Success:          true,
		EventID:          confirmation.EventID,
		EventName:        confirmation.EventName,
		RemainingTickets: confirmation.RemainingTickets,
		ConfirmationID:   confirmation.ConfirmationID,
		QRReceipt:        confirmation.QRReceipt,
	})
}

// writePurchaseError maps the purchase taxonomy onto HTTP statuses.
// Infrastructure detail never leaks to the caller.
func (h *Handler) writePurchaseError(w http.ResponseWriter, eventID int64, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid event ID or quantity provided."})
	case errors.Is(err, models.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Event not found."})
	case errors.Is(err, models.ErrSoldOut), errors.Is(err, models.ErrSoldOutRace):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Tickets sold out."})
	default:
		h.logError(fmt.Sprintf("PurchaseTicket: event %d: %v", eventID, err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal server error occurred while purchasing a ticket."})
	}
}

func (h *Handler) logError(message string) {
	if h.Logger != nil {
		h.Logger.Error("API", message)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
