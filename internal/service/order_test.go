package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/model"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
)

type recordingNotifier struct {
	placed    []*model.Order
	completed []*model.Order
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, o *model.Order) {
	n.placed = append(n.placed, o)
}

func (n *recordingNotifier) OrderCompleted(_ context.Context, o *model.Order) {
	n.completed = append(n.completed, o)
}

func validOrderRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		TelegramUserID: 42,
		Username:       "buyer",
		Contact:        "@buyer",
		TotalPrice:     decimal.NewFromInt(1000),
		Items: []model.CartItem{
			{ProductID: 1, Name: "Shirt", Price: decimal.NewFromInt(500), Quantity: 2},
		},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	store := newMockStore()
	notifier := &recordingNotifier{}
	svc := NewOrderService(store, notifier)

	order, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusNew, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Shirt", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1000)))

	// persisted before the notification was attempted
	require.Len(t, store.orders, 1)
	require.Len(t, notifier.placed, 1)
	assert.Equal(t, order.ID, notifier.placed[0].ID)
}

func TestOrderService_PlaceOrder_Invalid(t *testing.T) {
	store := newMockStore()
	notifier := &recordingNotifier{}
	svc := NewOrderService(store, notifier)

	req := validOrderRequest()
	req.Contact = ""
	req.Items = nil

	_, err := svc.PlaceOrder(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Messages, "contact is required")
	assert.Contains(t, vErr.Messages, "cart is empty")

	assert.Empty(t, store.orders, "validation failure must not reach the store")
	assert.Empty(t, notifier.placed)
}

func TestOrderService_Complete(t *testing.T) {
	store := newMockStore()
	notifier := &recordingNotifier{}
	svc := NewOrderService(store, notifier)

	order, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Complete(context.Background(), order.ID))

	got := store.orders[order.ID]
	assert.Equal(t, model.OrderStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	require.Len(t, notifier.completed, 1)
}

func TestOrderService_Complete_NotFound(t *testing.T) {
	store := newMockStore()
	notifier := &recordingNotifier{}
	svc := NewOrderService(store, notifier)

	err := svc.Complete(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, notifier.completed)
}
