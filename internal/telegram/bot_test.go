package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T) (*Bot, *fakeAPI) {
	api := newFakeAPI(t)
	bot := NewBot(api.client(), "https://shop.example", "admin123", "42", discardLogger())
	return bot, api
}

func update(chatID int64, text string, from *User) *Update {
	return &Update{Message: &Message{Chat: Chat{ID: chatID}, Text: text, From: from}}
}

func TestBot_StartRegularUser(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(10, "/start", &User{ID: 10, FirstName: "Ann"}))

	require.Len(t, api.messages, 1)
	msg := api.messages[0]
	assert.Equal(t, "10", msg.ChatID)
	assert.Contains(t, msg.Text, "Hi, Ann!")
	require.NotNil(t, msg.ReplyMarkup)
	require.Len(t, msg.ReplyMarkup.InlineKeyboard, 1)
	assert.Equal(t, "https://shop.example/miniapp/", msg.ReplyMarkup.InlineKeyboard[0][0].WebApp.URL)
}

func TestBot_StartAdminGetsAdminButton(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(42, "/start", &User{ID: 42, FirstName: "Dan"}))

	require.Len(t, api.messages, 1)
	keyboard := api.messages[0].ReplyMarkup.InlineKeyboard
	require.Len(t, keyboard, 2)
	assert.Equal(t, "https://shop.example/admin/", keyboard[1][0].WebApp.URL)
}

func TestBot_AdminCommand(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(42, "/admin", &User{ID: 42}))
	require.Len(t, api.messages, 1)
	assert.Contains(t, api.messages[0].Text, "<code>admin123</code>")

	bot.HandleUpdate(context.Background(), update(10, "/admin", &User{ID: 10}))
	require.Len(t, api.messages, 2)
	assert.Contains(t, api.messages[1].Text, "do not have access")
	assert.Nil(t, api.messages[1].ReplyMarkup)
}

func TestBot_IgnoresUnknownInput(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), update(10, "hello there", &User{ID: 10}))
	bot.HandleUpdate(context.Background(), &Update{})

	assert.Empty(t, api.messages)
}

func TestBot_CallbackQueryFallsBackToItsMessage(t *testing.T) {
	bot, api := newTestBot(t)

	bot.HandleUpdate(context.Background(), &Update{
		CallbackQuery: &CallbackQuery{Message: &Message{Chat: Chat{ID: 10}, Text: "/shop"}},
	})

	require.Len(t, api.messages, 1)
	assert.Contains(t, api.messages[0].Text, "Open the shop")
}
