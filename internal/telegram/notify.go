package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

// Notifier delivers order events to the admin chat. Delivery is
// fire-and-forget: no retry, no backoff, failures are logged and
// swallowed. With no token or chat id configured it is a no-op.
type Notifier struct {
	client *Client
	chatID string
	log    *slog.Logger
}

func NewNotifier(client *Client, chatID string, log *slog.Logger) *Notifier {
	return &Notifier{client: client, chatID: chatID, log: log}
}

func (n *Notifier) enabled() bool {
	return n.client.Configured() && n.chatID != ""
}

func (n *Notifier) OrderPlaced(ctx context.Context, o *model.Order) {
	n.send(ctx, renderOrderPlaced(o))
}

func (n *Notifier) OrderCompleted(ctx context.Context, o *model.Order) {
	n.send(ctx, fmt.Sprintf("✅ Order #%d completed and archived.", o.ID))
}

// send dispatches the message on a detached goroutine so a slow or
// unreachable endpoint never stalls the order that triggered it. The
// context is decoupled from the request so the send outlives the
// response.
func (n *Notifier) send(ctx context.Context, text string) {
	if !n.enabled() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := n.client.SendMessage(ctx, n.chatID, text, nil); err != nil {
			n.log.Error("send order notification", "error", err)
		}
	}()
}

func renderOrderPlaced(o *model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 <b>New order #%d</b>\n\n", o.ID)
	fmt.Fprintf(&b, "👤 <b>User:</b> @%s\n", o.Username)
	fmt.Fprintf(&b, "📞 <b>Contact:</b> %s\n", o.Contact)
	fmt.Fprintf(&b, "💰 <b>Total:</b> %s₽\n\n", o.TotalPrice)
	b.WriteString("<b>Items:</b>\n")
	for i, it := range o.Items {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(&b, "%d. %s x%d = %s₽\n", i+1, it.Name, it.Quantity, line)
	}
	return b.String()
}
