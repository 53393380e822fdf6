package service

import (
	"context"
	"fmt"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/model"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
	"github.com/danil228cmd/danisa-shop-bot/internal/validate"
)

// Notifier is the side channel for order events. Implementations must be
// fire-and-forget: they log transport failures and never return them, so
// an unreachable endpoint cannot fail an order that is already persisted.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *model.Order)
	OrderCompleted(ctx context.Context, o *model.Order)
}

// OrderService is the order pipeline: it turns a validated cart snapshot
// into a persisted order and advances order status.
type OrderService struct {
	store    repository.Store
	notifier Notifier
}

func NewOrderService(store repository.Store, notifier Notifier) *OrderService {
	return &OrderService{store: store, notifier: notifier}
}

// PlaceOrder validates the payload, persists the order with a frozen item
// snapshot and then notifies the admin chat. The order is durable before
// notification is attempted.
func (s *OrderService) PlaceOrder(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error) {
	if errs := validate.Order(req.Contact, req.Items, req.TotalPrice); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	o := &model.Order{
		TelegramUserID: req.TelegramUserID,
		Username:       req.Username,
		Contact:        req.Contact,
		TotalPrice:     req.TotalPrice,
		Items:          items,
	}
	if err := s.store.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.notifier.OrderPlaced(ctx, o)
	return o, nil
}

func (s *OrderService) Orders(ctx context.Context) ([]model.Order, error) {
	return s.store.Orders(ctx)
}

func (s *OrderService) Order(ctx context.Context, id int64) (*model.Order, error) {
	return s.store.Order(ctx, id)
}

// Complete archives the order via its status field. The order is looked
// up first so a missing id surfaces as NotFound even though the store
// transition itself is idempotent.
func (s *OrderService) Complete(ctx context.Context, id int64) error {
	o, err := s.store.Order(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.CompleteOrder(ctx, id); err != nil {
		return fmt.Errorf("complete order: %w", err)
	}

	s.notifier.OrderCompleted(ctx, o)
	return nil
}
