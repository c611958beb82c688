package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-service/internal/events"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type OrdersHandler struct {
	repo      repository.OrderRepositoryInterface
	publisher *events.Publisher
}

// NewOrdersHandler wires the order repository and an optional event
// publisher (nil when NATS is not configured).
func NewOrdersHandler(repo repository.OrderRepositoryInterface, publisher *events.Publisher) *OrdersHandler {
	return &OrdersHandler{repo: repo, publisher: publisher}
}

// CreateOrder places an order from the checkout submission.
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NO_ORDER_ITEMS",
				Message: "No order items",
			},
		})
		return
	}

	order := &models.Order{
		UserID:          user.ID,
		OrderNumber:     req.OrderNumber,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Tax:             req.Tax,
		Shipping:        req.Shipping,
		Subtotal:        req.Subtotal,
		Total:           req.Total,
		Status:          models.OrderStatusPending,
	}

	if err := h.repo.CreateOrder(c.Request.Context(), order); err != nil {
		respondServerError(c, "Failed to create order")
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderCreated(c.Request.Context(), order)
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders returns the authenticated user's order history, newest first.
// @Summary List own orders
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Router /orders/myorders [get]
func (h *OrdersHandler) GetMyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.repo.ListOrdersByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServerError(c, "Failed to retrieve orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order, visible to its owner or an admin.
// @Summary Get order
// @Tags orders
// @Produce json
// @Success 200 {object} models.Order
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondOrderNotFound(c)
		return
	}

	order, err := h.repo.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderNotFound(c)
		return
	}
	if !user.IsAdmin() && order.UserID != user.ID {
		respondNotOwner(c)
		return
	}

	c.JSON(http.StatusOK, order)
}

// PayOrder marks an order paid with a simulated payment result. There is no
// gateway behind this; checkout is simulated end to end.
// @Summary Pay order (simulated)
// @Tags orders
// @Produce json
// @Success 200 {object} models.Order
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/pay [put]
func (h *OrdersHandler) PayOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondOrderNotFound(c)
		return
	}

	order, err := h.repo.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderNotFound(c)
		return
	}
	if order.UserID != user.ID {
		respondNotOwner(c)
		return
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.Status = models.OrderStatusProcessing
	order.PaymentResult = &models.PaymentResult{
		ID:           uuid.NewString(),
		Status:       "COMPLETED",
		UpdateTime:   now.Format(time.RFC3339),
		EmailAddress: user.Email,
	}

	if err := h.repo.SaveOrder(c.Request.Context(), order); err != nil {
		respondServerError(c, "Failed to update order")
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderPaid(c.Request.Context(), order)
	}

	c.JSON(http.StatusOK, order)
}

func respondOrderNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: "Order not found",
		},
	})
}
