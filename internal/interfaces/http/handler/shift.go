package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apptill "github.com/gympos/backend/internal/application/till"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// ShiftHandler handles cash shift endpoints
type ShiftHandler struct {
	BaseHandler
	shiftService *apptill.ShiftService
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(shiftService *apptill.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// OpenShiftRequest is the payload for opening a shift
type OpenShiftRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" binding:"required"`
}

// CashSaleRequest is the payload for recording a cash sale
type CashSaleRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Open opens a shift for the authenticated operator, or returns the one
// already open
func (h *ShiftHandler) Open(c *gin.Context) {
	operatorID, err := getOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid shift payload: "+middleware.ValidationMessage(err))
		return
	}

	shift, err := h.shiftService.Open(c.Request.Context(), operatorID, req.OpeningAmount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shift)
}

// GetCurrent returns the authenticated operator's open shift
func (h *ShiftHandler) GetCurrent(c *gin.Context) {
	operatorID, err := getOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	shift, err := h.shiftService.GetCurrent(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "No open shift for this operator")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, shift)
}

// RecordCashSale adds a cash sale to the operator's open shift
func (h *ShiftHandler) RecordCashSale(c *gin.Context) {
	operatorID, err := getOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req CashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cash sale payload: "+middleware.ValidationMessage(err))
		return
	}

	shift, err := h.shiftService.RecordCashSale(c.Request.Context(), operatorID, req.Amount)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "No open shift for this operator")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, shift)
}

// Close settles a shift. Out-of-window closures come back with status
// authorization_required until valid supervisor credentials accompany
// the request.
func (h *ShiftHandler) Close(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shift ID")
		return
	}

	var req apptill.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid close payload: "+middleware.ValidationMessage(err))
		return
	}

	result, err := h.shiftService.Close(c.Request.Context(), shiftID, req)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Shift not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers shift routes
func (h *ShiftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shifts := rg.Group("/shifts")
	{
		shifts.POST("", h.Open)
		shifts.GET("/current", h.GetCurrent)
		shifts.POST("/cash-sales", h.RecordCashSale)
		shifts.POST("/:id/close", h.Close)
	}
}
