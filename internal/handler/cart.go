package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/service"
)

type CartHandler struct {
	svc *service.CartService
	log *slog.Logger
}

func NewCartHandler(svc *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

// cartUserID pulls the telegram user id token from the path. Carts are
// keyed by string, but the token must be a plain positive digit string;
// signed forms like "-5" or "+5" 404 the same way non-numeric ones do.
func cartUserID(c *gin.Context) (string, bool) {
	raw := c.Param("userId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 || raw[0] == '+' {
		NotFound(c)
		return "", false
	}
	return raw, true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}
	cart, err := h.svc.Cart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) SaveCart(c *gin.Context) {
	userID, ok := cartUserID(c)
	if !ok {
		return
	}
	var req dto.SaveCartRequest
	if !bindBody(c, &req) {
		return
	}

	if err := h.svc.SaveCart(c.Request.Context(), userID, req.Items); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
