package service

import (
	"context"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
)

// CartService is intentionally thin: carts are transient end-user state
// replaced wholesale on every save, so there is nothing to validate.
type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

func (s *CartService) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	return s.store.Cart(ctx, userID)
}

func (s *CartService) SaveCart(ctx context.Context, userID string, items []model.CartItem) error {
	return s.store.SaveCart(ctx, userID, items)
}
