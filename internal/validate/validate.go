// Package validate holds pure payload checks. Each function returns the
// full list of human-readable violations; an empty list means the payload
// may reach the store.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

const (
	maxCategoryName   = 100
	maxProductName    = 200
	maxDescriptionLen = 1000
	maxPriceUnits     = 1_000_000
)

var maxPrice = decimal.NewFromInt(maxPriceUnits)

func Category(name string) []string {
	var errs []string
	if strings.TrimSpace(name) == "" {
		errs = append(errs, "name is required")
	}
	if len([]rune(name)) > maxCategoryName {
		errs = append(errs, "name is too long (max 100 characters)")
	}
	return errs
}

func Product(name, description string, price decimal.Decimal) []string {
	var errs []string
	if strings.TrimSpace(name) == "" {
		errs = append(errs, "name is required")
	}
	if len([]rune(name)) > maxProductName {
		errs = append(errs, "name is too long (max 200 characters)")
	}
	if !price.IsPositive() {
		errs = append(errs, "price must be greater than 0")
	}
	if price.GreaterThan(maxPrice) {
		errs = append(errs, "price is too large")
	}
	if len([]rune(description)) > maxDescriptionLen {
		errs = append(errs, "description is too long (max 1000 characters)")
	}
	return errs
}

func Order(contact string, items []model.CartItem, totalPrice decimal.Decimal) []string {
	var errs []string
	if strings.TrimSpace(contact) == "" {
		errs = append(errs, "contact is required")
	}
	if len(items) == 0 {
		errs = append(errs, "cart is empty")
	}
	if !totalPrice.IsPositive() {
		errs = append(errs, "invalid order total")
	}
	return errs
}
