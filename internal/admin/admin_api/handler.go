package admin_api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ms-boxoffice/internal/admin"
	"ms-boxoffice/internal/logger"
	"ms-boxoffice/internal/models"
	"ms-boxoffice/internal/utils"
)

type Handler struct {
	AdminService *admin.AdminService
	Logger       *logger.Logger
}

func NewHandler(adminService *admin.AdminService, log *logger.Logger) *Handler {
	return &Handler{
		AdminService: adminService,
		Logger:       log,
	}
}

type createEventRequest struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Tickets *int   `json:"tickets"`
}

// CreateEvent handles POST /admin/events.
func (h *Handler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if req.Name == "" || req.Date == "" || req.Tickets == nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Missing name, date, or tickets", ""))
		return
	}

	created, err := h.AdminService.CreateEvent(c.Request.Context(), req.Name, req.Date, *req.Tickets)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid event data", err.Error()))
			return
		}
		if h.Logger != nil {
			h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Event created", created))
}

// ListEvents handles GET /admin/events.
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.AdminService.ListEvents(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("API", fmt.Sprintf("ListEvents: %v", err))
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Events retrieved", events))
}
