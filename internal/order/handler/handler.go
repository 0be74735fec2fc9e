package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type listResponse struct {
	Orders   []model.Order `json:"orders"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ListOrders is the admin order board.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := parseFilters(c)
	filters.Status = model.OrderStatus(c.Query("status"))
	filters.Search = c.Query("search")
	h.list(c, filters)
}

// ListMyOrders lists the caller's own order history.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	filters := parseFilters(c)
	filters.UserID = auth.GetUserID(c.Request.Context())
	h.list(c, filters)
}

func (h *OrderHandler) list(c *gin.Context, filters *dto.OrderFilters) {
	orders, total, err := h.uc.ListOrders(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(listResponse{
		Orders:   orders,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}))
}

// GetOrder returns an order with its lines. Callers outside order staff only see their own orders.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx := c.Request.Context()
	o, err := h.uc.GetOrder(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	caller := auth.FromContext(ctx)
	if !caller.HasRole(model.OrderStaffRoles...) && (o.UserID == nil || *o.UserID != caller.UserID) {
		h.fail(c, order.ErrOrderNotFound)
		return
	}
	c.JSON(http.StatusOK, response.Success(o))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid JSON format", []response.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	o, link, err := h.uc.UpdateStatus(c.Request.Context(), &dto.UpdateStatusInput{
		ID:     c.Param("id"),
		Status: model.OrderStatus(req.Status),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"order":             o,
		"notification_link": link,
	}))
}

func (h *OrderHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, response.Error(err.Error(), []response.ValidationError{
			{Field: "status", Message: "status must be one of sent, confirmed, delivered", Code: "invalid"},
		}))
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, response.Error("Order not found", nil))
	default:
		h.logger.Error("order request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error", nil))
	}
}

func parseFilters(c *gin.Context) *dto.OrderFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}
	return &dto.OrderFilters{Page: page, PageSize: size}
}
