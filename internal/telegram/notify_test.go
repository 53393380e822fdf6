package telegram

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

type capturedMessage struct {
	ChatID      string       `json:"chat_id"`
	Text        string       `json:"text"`
	ParseMode   string       `json:"parse_mode"`
	ReplyMarkup *ReplyMarkup `json:"reply_markup"`
}

// fakeAPI stands in for api.telegram.org and records every sendMessage.
// Notifier sends arrive on a goroutine, so tests synchronize through
// the received channel instead of polling the slice.
type fakeAPI struct {
	server  *httptest.Server
	respond string

	mu       sync.Mutex
	messages []capturedMessage
	received chan capturedMessage
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		respond:  `{"ok":true}`,
		received: make(chan capturedMessage, 16),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg capturedMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		f.mu.Lock()
		f.messages = append(f.messages, msg)
		f.mu.Unlock()
		f.received <- msg
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, f.respond)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client() *Client {
	c := NewClient("test-token")
	c.baseURL = f.server.URL
	return c
}

// wait blocks until the next message is delivered.
func (f *fakeAPI) wait(t *testing.T) capturedMessage {
	t.Helper()
	select {
	case msg := <-f.received:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message reached the endpoint")
		return capturedMessage{}
	}
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleOrder() *model.Order {
	return &model.Order{
		ID:         7,
		Username:   "buyer",
		Contact:    "@buyer",
		TotalPrice: decimal.NewFromInt(1000),
		Items: []model.OrderItem{
			{ProductID: 1, Name: "Shirt", Price: decimal.NewFromInt(500), Quantity: 2},
		},
	}
}

func TestNotifier_OrderPlaced(t *testing.T) {
	api := newFakeAPI(t)
	n := NewNotifier(api.client(), "100500", discardLogger())

	n.OrderPlaced(context.Background(), sampleOrder())

	msg := api.wait(t)
	assert.Equal(t, "100500", msg.ChatID)
	assert.Equal(t, "HTML", msg.ParseMode)
	assert.Contains(t, msg.Text, "New order #7")
	assert.Contains(t, msg.Text, "@buyer")
	assert.Contains(t, msg.Text, "1. Shirt x2 = 1000₽")
}

func TestNotifier_OrderCompleted(t *testing.T) {
	api := newFakeAPI(t)
	n := NewNotifier(api.client(), "100500", discardLogger())

	n.OrderCompleted(context.Background(), sampleOrder())

	assert.Contains(t, api.wait(t).Text, "Order #7 completed")
}

func TestNotifier_NoopWhenUnconfigured(t *testing.T) {
	api := newFakeAPI(t)

	// missing chat id
	n := NewNotifier(api.client(), "", discardLogger())
	n.OrderPlaced(context.Background(), sampleOrder())

	// missing token
	c := NewClient("")
	c.baseURL = api.server.URL
	n = NewNotifier(c, "100500", discardLogger())
	n.OrderPlaced(context.Background(), sampleOrder())

	// an unconfigured notifier never even starts a send
	assert.Zero(t, api.count())
}

func TestNotifier_SwallowsTransportErrors(t *testing.T) {
	api := newFakeAPI(t)
	api.respond = `{"ok":false,"description":"chat not found"}`
	n := NewNotifier(api.client(), "100500", discardLogger())

	// must not panic or surface anything
	n.OrderPlaced(context.Background(), sampleOrder())
	api.wait(t)
}

// The caller must get its response back while the endpoint is still
// hanging; delivery happens behind it.
func TestNotifier_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	delivered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		io.WriteString(w, `{"ok":true}`)
		close(delivered)
	}))
	defer server.Close()

	c := NewClient("test-token")
	c.baseURL = server.URL
	n := NewNotifier(c, "100500", discardLogger())

	returned := make(chan struct{})
	go func() {
		n.OrderPlaced(context.Background(), sampleOrder())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("OrderPlaced waited for the endpoint to answer")
	}

	close(release)
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never delivered")
	}
}

func TestNotifier_OutlivesRequestContext(t *testing.T) {
	api := newFakeAPI(t)
	n := NewNotifier(api.client(), "100500", discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.OrderPlaced(ctx, sampleOrder())

	assert.Contains(t, api.wait(t).Text, "New order #7")
}
