package public

import (
	"strconv"
	"strings"

	handlershared "github.com/palengke/storefront/internal/http/handlers/shared"
	"github.com/palengke/storefront/internal/http/response"
	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/repository"
	"github.com/palengke/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the checkout payload. Items come from the cart;
// item_ids restricts checkout to those cart lines, empty means all.
type CreateOrderRequest struct {
	ItemIDs       []uint `json:"item_ids"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	ShippingName  string `json:"shipping_name" binding:"required"`
	ShippingPhone string `json:"shipping_phone" binding:"required"`
	ShippingAddr  string `json:"shipping_addr" binding:"required"`
}

// CreateOrder converts the cart into an order.
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:        uid,
		ItemIDs:       req.ItemIDs,
		PaymentMethod: req.PaymentMethod,
		ShippingName:  req.ShippingName,
		ShippingPhone: req.ShippingPhone,
		ShippingAddr:  req.ShippingAddr,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to place order")
		return
	}

	response.Success(c, order)
}

// ListOrders returns the caller's orders.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder returns one of the caller's orders with its lines. The path
// parameter is either the numeric id or the public order number.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var order *models.Order
	var err error
	raw := strings.TrimSpace(c.Param("id"))
	if orderID, convErr := strconv.ParseUint(raw, 10, 64); convErr == nil && orderID > 0 {
		order, err = h.OrderService.GetByUser(uint(orderID), uid)
	} else {
		order, err = h.OrderService.GetByUserAndOrderNo(raw, uid)
	}
	if err != nil {
		respondWithMappedError(c, err, orderLifecycleErrorRules, response.CodeInternal, "failed to load order")
		return
	}

	response.Success(c, order)
}

// CancelOrder cancels a pending or processing order and restores stock.
func (h *Handler) CancelOrder(c *gin.Context) {
	h.advanceOrder(c, func(orderID, uid uint) (interface{}, error) {
		return h.OrderService.CancelOrder(orderID, uid)
	})
}

// RequestOrderReturn flags a shipped order for return.
func (h *Handler) RequestOrderReturn(c *gin.Context) {
	h.advanceOrder(c, func(orderID, uid uint) (interface{}, error) {
		return h.OrderService.RequestReturn(orderID, uid)
	})
}

// ConfirmOrderReceived marks a shipped order as delivered.
func (h *Handler) ConfirmOrderReceived(c *gin.Context) {
	h.advanceOrder(c, func(orderID, uid uint) (interface{}, error) {
		return h.OrderService.MarkReceived(orderID, uid)
	})
}

func (h *Handler) advanceOrder(c *gin.Context, advance func(orderID, uid uint) (interface{}, error)) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	order, err := advance(orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, orderLifecycleErrorRules, response.CodeInternal, "failed to update order")
		return
	}

	response.Success(c, order)
}

func parseOrderIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return 0, false
	}
	return uint(parsed), true
}
