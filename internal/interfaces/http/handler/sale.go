package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmembership "github.com/gympos/backend/internal/application/membership"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/interfaces/http/dto"
	"github.com/gympos/backend/internal/interfaces/http/middleware"
)

// SaleHandler handles digital sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *appmembership.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *appmembership.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// CreatePendingSale records a digital-product sale paid later in cash
// and returns the payment code the member settles it with
func (h *SaleHandler) CreatePendingSale(c *gin.Context) {
	var req appmembership.CreatePendingSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid sale payload: "+middleware.ValidationMessage(err))
		return
	}

	resp, err := h.saleService.CreatePendingSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListMemberSales lists a member's sales
func (h *SaleHandler) ListMemberSales(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+middleware.ValidationMessage(err))
		return
	}

	filter := shared.DefaultFilter()
	if listReq.Page > 0 {
		filter.Page = listReq.Page
	}
	if listReq.PageSize > 0 {
		filter.PageSize = listReq.PageSize
	}

	sales, err := h.saleService.ListMemberSales(c.Request.Context(), memberID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sales)
}

// ListMemberNotifications lists a member's unanswered payment notifications
func (h *SaleHandler) ListMemberNotifications(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	notifications, err := h.saleService.ListPendingNotifications(c.Request.Context(), memberID, shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notifications)
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.CreatePendingSale)
	}

	members := rg.Group("/members")
	{
		members.GET("/:id/sales", h.ListMemberSales)
		members.GET("/:id/notifications", h.ListMemberNotifications)
	}
}
