package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

var (
	// ErrNotFound is returned when an operation addresses a missing
	// primary key (or a missing parent on create).
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when a name uniqueness constraint is
	// violated: global for categories, per-parent for subcategories.
	ErrDuplicateName = errors.New("duplicate name")
)

// ProductUpdate is a partial update; zero-value fields keep the stored
// value.
type ProductUpdate struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type CategoryStore interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type SubcategoryStore interface {
	// Subcategories lists all subcategories, or only those under
	// categoryID when it is non-zero.
	Subcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error)
	CreateSubcategory(ctx context.Context, categoryID int64, name string) (*model.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error
}

type ProductStore interface {
	// Products lists all products, or only those under subcategoryID when
	// it is non-zero.
	Products(ctx context.Context, subcategoryID int64) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) error
	// DeleteProduct removes the product and strips it from every saved
	// cart. Already-placed orders keep their item snapshots.
	DeleteProduct(ctx context.Context, id int64) error
}

type CartStore interface {
	// Cart returns the user's cart, or an empty cart when none exists.
	Cart(ctx context.Context, userID string) (*model.Cart, error)
	// SaveCart replaces the user's cart wholesale.
	SaveCart(ctx context.Context, userID string, items []model.CartItem) error
}

type OrderStore interface {
	// Orders lists all orders, newest first.
	Orders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, o *model.Order) error
	// CompleteOrder transitions new -> completed and stamps completed_at.
	// It is a no-op on missing or already completed orders.
	CompleteOrder(ctx context.Context, id int64) error
	DeleteOrder(ctx context.Context, id int64) error
}

// Store is the persistence contract the rest of the system depends on.
// Two backends implement it: postgres and a flat-file store. Both must
// produce identical results for the same call sequence.
type Store interface {
	CategoryStore
	SubcategoryStore
	ProductStore
	CartStore
	OrderStore

	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
}
