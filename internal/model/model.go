package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Subcategory struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Product struct {
	ID            int64           `json:"id"`
	SubcategoryID int64           `json:"subcategory_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	// MainImage and Images hold base64 data URLs; the first image is the
	// main one.
	MainImage string    `json:"main_image"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusCompleted OrderStatus = "completed"
)

// OrderItem is a snapshot of a product at purchase time. Later product
// edits or deletes never touch it.
type OrderItem struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID             int64           `json:"id"`
	TelegramUserID int64           `json:"telegram_user_id"`
	Username       string          `json:"username"`
	Contact        string          `json:"contact"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Items          []OrderItem     `json:"items"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

type CartItem struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Cart is keyed by the telegram user id and replaced wholesale on every
// save.
type Cart struct {
	Items []CartItem `json:"items"`
}
