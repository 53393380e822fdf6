package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

func (s *Postgres) Orders(ctx context.Context) ([]model.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, telegram_user_id, username, contact, total_price, items, status, created_at, completed_at
		 FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *Postgres) Order(ctx context.Context, id int64) (*model.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, telegram_user_id, username, contact, total_price, items, status, created_at, completed_at
		 FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var items string
	err := row.Scan(&o.ID, &o.TelegramUserID, &o.Username, &o.Contact, &o.TotalPrice,
		&items, &o.Status, &o.CreatedAt, &o.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Items = []model.OrderItem{}
	if items != "" {
		_ = json.Unmarshal([]byte(items), &o.Items)
	}
	return &o, nil
}

func (s *Postgres) CreateOrder(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	o.Status = model.OrderStatusNew
	err = s.pool.QueryRow(ctx,
		`INSERT INTO orders (telegram_user_id, username, contact, total_price, items, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		o.TelegramUserID, o.Username, o.Contact, o.TotalPrice, string(items), o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *Postgres) CompleteOrder(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $2, completed_at = NOW()
		 WHERE id = $1 AND status = $3`,
		id, model.OrderStatusCompleted, model.OrderStatusNew,
	)
	if err != nil {
		return fmt.Errorf("complete order: %w", err)
	}
	return nil
}

func (s *Postgres) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
