package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmembership "github.com/gympos/backend/internal/application/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/interfaces/http/middleware"
)

// NotificationHandler handles payment notification endpoints
type NotificationHandler struct {
	BaseHandler
	confirmationService *appmembership.ConfirmationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(confirmationService *appmembership.ConfirmationService) *NotificationHandler {
	return &NotificationHandler{confirmationService: confirmationService}
}

// ConfirmRequest is the payload for confirming a cash payment
type ConfirmRequest struct {
	Observations string `json:"observations,omitempty"`
}

// ResolveSale resolves which sale a notification settles, without
// changing anything. Used by the front desk to preview the obligation
// before taking the cash.
func (h *NotificationHandler) ResolveSale(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	sale, err := h.confirmationService.Resolve(c.Request.Context(), notificationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "No sale could be resolved for this notification")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ConfirmCashPayment confirms the cash payment behind a notification,
// activating the sale and its entitlement. Replays of an already
// resolved notification report already_resolved with nothing reapplied.
func (h *NotificationHandler) ConfirmCashPayment(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, "Invalid confirmation payload: "+middleware.ValidationMessage(err))
		return
	}

	result, err := h.confirmationService.ConfirmCashPayment(c.Request.Context(), notificationID, req.Observations)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Notification or its sale was not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("/:id/sale", h.ResolveSale)
		notifications.POST("/:id/confirm", h.ConfirmCashPayment)
	}
}
