package dto

import (
	"github.com/shopspring/decimal"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

// Admin carries the shared admin secret that mutating requests put in
// their JSON body.
type Admin struct {
	Password string `json:"password"`
}

// --- Catalog ---

type CreateCategoryRequest struct {
	Admin
	Name string `json:"name"`
}

type CreateSubcategoryRequest struct {
	Admin
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

type CreateProductRequest struct {
	Admin
	SubcategoryID int64           `json:"subcategoryId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageData     string          `json:"imageData"`
}

// UpdateProductRequest is a partial update: zero-value fields keep the
// stored value, matching the admin panel which always posts the full form.
type UpdateProductRequest struct {
	Admin
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type CreatedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Cart ---

type SaveCartRequest struct {
	Items []model.CartItem `json:"items"`
}

// --- Orders ---

type CreateOrderRequest struct {
	TelegramUserID int64            `json:"telegramUserId"`
	Username       string           `json:"username"`
	Contact        string           `json:"contact"`
	TotalPrice     decimal.Decimal  `json:"totalPrice"`
	Items          []model.CartItem `json:"items"`
}

type OrderCreatedResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
