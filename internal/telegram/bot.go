package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Update is the subset of a Bot API webhook payload the shop reacts to.
type Update struct {
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type CallbackQuery struct {
	Message *Message `json:"message"`
}

type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
	From *User  `json:"from"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

// Bot answers the handful of commands the storefront bot supports. All
// replies go out through the client; send failures are logged and never
// bubble up to the webhook response.
type Bot struct {
	client          *Client
	serverURL       string
	adminPassword   string
	adminTelegramID string
	log             *slog.Logger
}

func NewBot(client *Client, serverURL, adminPassword, adminTelegramID string, log *slog.Logger) *Bot {
	return &Bot{
		client:          client,
		serverURL:       serverURL,
		adminPassword:   adminPassword,
		adminTelegramID: adminTelegramID,
		log:             log,
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, upd *Update) {
	msg := upd.Message
	if msg == nil && upd.CallbackQuery != nil {
		msg = upd.CallbackQuery.Message
	}
	if msg == nil {
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		b.handleStart(ctx, chatID, msg.From)
	case msg.Text == "/shop":
		b.reply(ctx, chatID, "🛍️ Open the shop!", &ReplyMarkup{
			InlineKeyboard: [][]InlineKeyboardButton{{b.shopButton()}},
		})
	case strings.HasPrefix(msg.Text, "/admin"):
		b.handleAdmin(ctx, chatID, msg.From)
	case msg.Text == "/help":
		b.reply(ctx, chatID,
			"📱 <b>DANISA SHOP BOT</b>\n\nCommands:\n/start - Main menu\n/shop - Open the shop\n/admin - Admin panel\n/help - This message",
			nil)
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID string, from *User) {
	name := "User"
	if from != nil && from.FirstName != "" {
		name = from.FirstName
	}
	keyboard := [][]InlineKeyboardButton{{b.shopButton()}}
	if b.isAdmin(from) {
		keyboard = append(keyboard, []InlineKeyboardButton{b.adminButton()})
	}
	text := fmt.Sprintf("👋 Hi, %s!\n\n🛍️ Welcome to <b>DANISA SHOP</b>!\n\nPick an action:", name)
	b.reply(ctx, chatID, text, &ReplyMarkup{InlineKeyboard: keyboard})
}

func (b *Bot) handleAdmin(ctx context.Context, chatID string, from *User) {
	if !b.isAdmin(from) {
		b.reply(ctx, chatID, "❌ You do not have access to the admin panel.", nil)
		return
	}
	text := fmt.Sprintf("🔐 <b>Admin panel</b>\n\nSign in with password: <code>%s</code>", b.adminPassword)
	b.reply(ctx, chatID, text, &ReplyMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{b.adminButton()}},
	})
}

func (b *Bot) isAdmin(from *User) bool {
	if from == nil || b.adminTelegramID == "" {
		return false
	}
	return strconv.FormatInt(from.ID, 10) == b.adminTelegramID
}

func (b *Bot) shopButton() InlineKeyboardButton {
	return InlineKeyboardButton{
		Text:   "🛍️ Open shop",
		WebApp: &WebAppInfo{URL: b.serverURL + "/miniapp/"},
	}
}

func (b *Bot) adminButton() InlineKeyboardButton {
	return InlineKeyboardButton{
		Text:   "⚙️ Admin panel",
		WebApp: &WebAppInfo{URL: b.serverURL + "/admin/"},
	}
}

func (b *Bot) reply(ctx context.Context, chatID, text string, markup *ReplyMarkup) {
	if err := b.client.SendMessage(ctx, chatID, text, markup); err != nil {
		b.log.Error("send bot reply", "error", err)
	}
}
