package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danil228cmd/danisa-shop-bot/internal/telegram"
)

type TelegramHandler struct {
	bot *telegram.Bot
}

func NewTelegramHandler(bot *telegram.Bot) *TelegramHandler {
	return &TelegramHandler{bot: bot}
}

// Webhook always answers 200 so Telegram does not retry the same update
// forever; an unparseable body is acknowledged with ok=false.
func (h *TelegramHandler) Webhook(c *gin.Context) {
	var upd telegram.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	h.bot.HandleUpdate(c.Request.Context(), &upd)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
