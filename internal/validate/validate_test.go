package validate

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

func TestCategory(t *testing.T) {
	assert.Empty(t, Category("Shirts"))
	assert.Contains(t, Category(""), "name is required")
	assert.Contains(t, Category("   "), "name is required")
	assert.Contains(t, Category(strings.Repeat("x", 101)), "name is too long (max 100 characters)")
	assert.Empty(t, Category(strings.Repeat("x", 100)))
}

func TestProduct(t *testing.T) {
	price := decimal.NewFromInt(500)

	assert.Empty(t, Product("Shirt", "cotton", price))

	errs := Product("", "", decimal.Zero)
	assert.Contains(t, errs, "name is required")
	assert.Contains(t, errs, "price must be greater than 0")

	assert.Contains(t,
		Product("Shirt", "", decimal.NewFromInt(-5)),
		"price must be greater than 0")
	assert.Contains(t,
		Product("Shirt", "", decimal.NewFromInt(1_000_001)),
		"price is too large")
	assert.Empty(t, Product("Shirt", "", decimal.NewFromInt(1_000_000)))
	assert.Contains(t,
		Product(strings.Repeat("x", 201), "", price),
		"name is too long (max 200 characters)")
	assert.Contains(t,
		Product("Shirt", strings.Repeat("x", 1001), price),
		"description is too long (max 1000 characters)")
}

func TestProduct_CollectsAllViolations(t *testing.T) {
	errs := Product("", strings.Repeat("x", 1001), decimal.Zero)
	assert.Len(t, errs, 3)
}

func TestOrder(t *testing.T) {
	items := []model.CartItem{{ProductID: 1, Name: "Shirt", Price: decimal.NewFromInt(500), Quantity: 2}}
	total := decimal.NewFromInt(1000)

	assert.Empty(t, Order("@user", items, total))
	assert.Contains(t, Order("", items, total), "contact is required")
	assert.Contains(t, Order("@user", nil, total), "cart is empty")
	assert.Contains(t, Order("@user", items, decimal.Zero), "invalid order total")
}
