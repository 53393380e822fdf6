package service

import (
	"context"
	"time"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
)

// mockStore is a map-backed repository.Store for service tests.
type mockStore struct {
	categories    map[int64]*model.Category
	subcategories map[int64]*model.Subcategory
	products      map[int64]*model.Product
	orders        map[int64]*model.Order
	carts         map[string][]model.CartItem
	nextID        int64

	lastUpdate repository.ProductUpdate
}

func newMockStore() *mockStore {
	return &mockStore{
		categories:    make(map[int64]*model.Category),
		subcategories: make(map[int64]*model.Subcategory),
		products:      make(map[int64]*model.Product),
		orders:        make(map[int64]*model.Order),
		carts:         make(map[string][]model.CartItem),
	}
}

func (m *mockStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockStore) Ping(context.Context) error { return nil }

func (m *mockStore) Categories(context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockStore) CreateCategory(_ context.Context, name string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return nil, repository.ErrDuplicateName
		}
	}
	c := &model.Category{ID: m.id(), Name: name, CreatedAt: time.Now()}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockStore) DeleteCategory(_ context.Context, id int64) error {
	delete(m.categories, id)
	return nil
}

func (m *mockStore) Subcategories(_ context.Context, categoryID int64) ([]model.Subcategory, error) {
	out := make([]model.Subcategory, 0, len(m.subcategories))
	for _, sc := range m.subcategories {
		if categoryID == 0 || sc.CategoryID == categoryID {
			out = append(out, *sc)
		}
	}
	return out, nil
}

func (m *mockStore) CreateSubcategory(_ context.Context, categoryID int64, name string) (*model.Subcategory, error) {
	if _, ok := m.categories[categoryID]; !ok {
		return nil, repository.ErrNotFound
	}
	sc := &model.Subcategory{ID: m.id(), CategoryID: categoryID, Name: name, CreatedAt: time.Now()}
	m.subcategories[sc.ID] = sc
	return sc, nil
}

func (m *mockStore) DeleteSubcategory(_ context.Context, id int64) error {
	delete(m.subcategories, id)
	return nil
}

func (m *mockStore) Products(_ context.Context, subcategoryID int64) ([]model.Product, error) {
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		if subcategoryID == 0 || p.SubcategoryID == subcategoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) Product(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockStore) CreateProduct(_ context.Context, p *model.Product) error {
	p.ID = m.id()
	p.CreatedAt = time.Now()
	m.products[p.ID] = p
	return nil
}

func (m *mockStore) UpdateProduct(_ context.Context, id int64, upd repository.ProductUpdate) error {
	m.lastUpdate = upd
	return nil
}

func (m *mockStore) DeleteProduct(_ context.Context, id int64) error {
	delete(m.products, id)
	return nil
}

func (m *mockStore) Cart(_ context.Context, userID string) (*model.Cart, error) {
	items := m.carts[userID]
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.Cart{Items: items}, nil
}

func (m *mockStore) SaveCart(_ context.Context, userID string, items []model.CartItem) error {
	m.carts[userID] = items
	return nil
}

func (m *mockStore) Orders(context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockStore) Order(_ context.Context, id int64) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (m *mockStore) CreateOrder(_ context.Context, o *model.Order) error {
	o.ID = m.id()
	o.Status = model.OrderStatusNew
	o.CreatedAt = time.Now()
	m.orders[o.ID] = o
	return nil
}

func (m *mockStore) CompleteOrder(_ context.Context, id int64) error {
	o, ok := m.orders[id]
	if !ok || o.Status != model.OrderStatusNew {
		return nil
	}
	now := time.Now()
	o.Status = model.OrderStatusCompleted
	o.CompletedAt = &now
	return nil
}

func (m *mockStore) DeleteOrder(_ context.Context, id int64) error {
	delete(m.orders, id)
	return nil
}
