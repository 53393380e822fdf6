package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/service"
)

type OrderHandler struct {
	svc      *service.OrderService
	password string
	log      *slog.Logger
}

func NewOrderHandler(svc *service.OrderService, password string, log *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, password: password, log: log}
}

// ListOrders requires the admin secret as a query parameter: orders carry
// customer contact data.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	if !authorize(c, c.Query("password"), h.password) {
		return
	}
	orders, err := h.svc.Orders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	if !authorize(c, c.Query("password"), h.password) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.Order(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder is the one unauthenticated mutation: end users place
// orders straight from the mini app.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindBody(c, &req) {
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.OrderCreatedResponse{ID: order.ID, Status: "success"})
}

func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.Admin
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	if err := h.svc.Complete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "order not found")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
