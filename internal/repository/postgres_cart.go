package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

func (s *Postgres) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	var raw string
	err := s.pool.QueryRow(ctx,
		`SELECT items FROM carts WHERE telegram_user_id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.Cart{Items: []model.CartItem{}}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &model.Cart{Items: decodeCartItems(raw)}, nil
}

func (s *Postgres) SaveCart(ctx context.Context, userID string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO carts (telegram_user_id, items, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (telegram_user_id)
		 DO UPDATE SET items = $2, updated_at = NOW()`,
		userID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func decodeCartItems(raw string) []model.CartItem {
	items := []model.CartItem{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &items)
	}
	return items
}
