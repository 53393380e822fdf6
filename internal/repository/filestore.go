package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

const (
	categoriesFile    = "categories.json"
	subcategoriesFile = "subcategories.json"
	productsFile      = "products.json"
	ordersFile        = "orders.json"
	cartsFile         = "carts.json"
)

// FileStore implements Store on plain JSON files, one per table. Tables
// live in memory and the affected file is rewritten wholesale after every
// successful mutation. It is the fallback backend for deployments without
// a database; a single process is assumed to own the data directory.
//
// The mutex exists because the HTTP server dispatches concurrently;
// semantics stay last-writer-wins at whole-table granularity.
type FileStore struct {
	mu  sync.RWMutex
	dir string

	categories    []model.Category
	subcategories []model.Subcategory
	products      []model.Product
	orders        []model.Order
	carts         map[string][]model.CartItem
}

func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &FileStore{
		dir:           dir,
		categories:    []model.Category{},
		subcategories: []model.Subcategory{},
		products:      []model.Product{},
		orders:        []model.Order{},
		carts:         map[string][]model.CartItem{},
	}
	for file, table := range map[string]any{
		categoriesFile:    &s.categories,
		subcategoriesFile: &s.subcategories,
		productsFile:      &s.products,
		ordersFile:        &s.orders,
		cartsFile:         &s.carts,
	} {
		if err := s.loadTable(file, table); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FileStore) loadTable(file string, out any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", file, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}
	return nil
}

// writeTable rewrites one table file atomically (temp file + rename), so
// a crash mid-write never leaves a truncated table behind.
func (s *FileStore) writeTable(file string, table any) error {
	raw, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}
	tmp, err := os.CreateTemp(s.dir, file+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", file, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, file)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

func (s *FileStore) Ping(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// nextCategoryID and friends generate max(id)+1: gaps after deletion,
// never a reused id.

func (s *FileStore) nextCategoryID() int64 {
	var max int64
	for _, c := range s.categories {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

func (s *FileStore) nextSubcategoryID() int64 {
	var max int64
	for _, sc := range s.subcategories {
		if sc.ID > max {
			max = sc.ID
		}
	}
	return max + 1
}

func (s *FileStore) nextProductID() int64 {
	var max int64
	for _, p := range s.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func (s *FileStore) nextOrderID() int64 {
	var max int64
	for _, o := range s.orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

// --- Categories ---

func (s *FileStore) Categories(context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *FileStore) CreateCategory(_ context.Context, name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == name {
			return nil, ErrDuplicateName
		}
	}
	cat := model.Category{ID: s.nextCategoryID(), Name: name, CreatedAt: time.Now().UTC()}
	next := append(append([]model.Category{}, s.categories...), cat)
	if err := s.writeTable(categoriesFile, next); err != nil {
		return nil, err
	}
	s.categories = next
	return &cat, nil
}

func (s *FileStore) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.ID != id {
			cats = append(cats, c)
		}
	}

	subIDs := map[int64]bool{}
	subs := make([]model.Subcategory, 0, len(s.subcategories))
	for _, sc := range s.subcategories {
		if sc.CategoryID == id {
			subIDs[sc.ID] = true
			continue
		}
		subs = append(subs, sc)
	}

	prods := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if !subIDs[p.SubcategoryID] {
			prods = append(prods, p)
		}
	}

	if err := s.writeTable(categoriesFile, cats); err != nil {
		return err
	}
	if err := s.writeTable(subcategoriesFile, subs); err != nil {
		return err
	}
	if err := s.writeTable(productsFile, prods); err != nil {
		return err
	}
	s.categories, s.subcategories, s.products = cats, subs, prods
	return nil
}

// --- Subcategories ---

func (s *FileStore) Subcategories(_ context.Context, categoryID int64) ([]model.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Subcategory, 0, len(s.subcategories))
	for _, sc := range s.subcategories {
		if categoryID == 0 || sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *FileStore) CreateSubcategory(_ context.Context, categoryID int64, name string) (*model.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, c := range s.categories {
		if c.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	for _, sc := range s.subcategories {
		if sc.CategoryID == categoryID && sc.Name == name {
			return nil, ErrDuplicateName
		}
	}

	sub := model.Subcategory{
		ID:         s.nextSubcategoryID(),
		CategoryID: categoryID,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	next := append(append([]model.Subcategory{}, s.subcategories...), sub)
	if err := s.writeTable(subcategoriesFile, next); err != nil {
		return nil, err
	}
	s.subcategories = next
	return &sub, nil
}

func (s *FileStore) DeleteSubcategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make([]model.Subcategory, 0, len(s.subcategories))
	for _, sc := range s.subcategories {
		if sc.ID != id {
			subs = append(subs, sc)
		}
	}
	prods := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.SubcategoryID != id {
			prods = append(prods, p)
		}
	}

	if err := s.writeTable(subcategoriesFile, subs); err != nil {
		return err
	}
	if err := s.writeTable(productsFile, prods); err != nil {
		return err
	}
	s.subcategories, s.products = subs, prods
	return nil
}

// --- Products ---

func (s *FileStore) Products(_ context.Context, subcategoryID int64) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if subcategoryID == 0 || p.SubcategoryID == subcategoryID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (s *FileStore) Product(_ context.Context, id int64) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			c := cloneProduct(p)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) CreateProduct(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, sc := range s.subcategories {
		if sc.ID == p.SubcategoryID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	p.ID = s.nextProductID()
	p.CreatedAt = time.Now().UTC()
	if p.Images == nil {
		p.Images = []string{}
	}
	next := append(append([]model.Product{}, s.products...), cloneProduct(*p))
	if err := s.writeTable(productsFile, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

func (s *FileStore) UpdateProduct(_ context.Context, id int64, upd ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Product, len(s.products))
	copy(next, s.products)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if upd.Name != "" {
			next[i].Name = upd.Name
		}
		if upd.Description != "" {
			next[i].Description = upd.Description
		}
		if upd.Price.IsPositive() {
			next[i].Price = upd.Price
		}
		if err := s.writeTable(productsFile, next); err != nil {
			return err
		}
		s.products = next
		return nil
	}
	return nil
}

func (s *FileStore) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prods := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			prods = append(prods, p)
		}
	}

	carts := make(map[string][]model.CartItem, len(s.carts))
	for userID, items := range s.carts {
		kept := make([]model.CartItem, 0, len(items))
		for _, it := range items {
			if it.ProductID != id {
				kept = append(kept, it)
			}
		}
		carts[userID] = kept
	}

	if err := s.writeTable(productsFile, prods); err != nil {
		return err
	}
	if err := s.writeTable(cartsFile, carts); err != nil {
		return err
	}
	s.products, s.carts = prods, carts
	return nil
}

// --- Carts ---

func (s *FileStore) Cart(_ context.Context, userID string) (*model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.carts[userID]
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return &model.Cart{Items: out}, nil
}

func (s *FileStore) SaveCart(_ context.Context, userID string, items []model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]model.CartItem, len(items))
	copy(stored, items)

	carts := make(map[string][]model.CartItem, len(s.carts)+1)
	for k, v := range s.carts {
		carts[k] = v
	}
	carts[userID] = stored

	if err := s.writeTable(cartsFile, carts); err != nil {
		return err
	}
	s.carts = carts
	return nil
}

// --- Orders ---

func (s *FileStore) Orders(context.Context) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *FileStore) Order(_ context.Context, id int64) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) CreateOrder(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextOrderID()
	o.Status = model.OrderStatusNew
	o.CreatedAt = time.Now().UTC()
	o.CompletedAt = nil
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	next := append(append([]model.Order{}, s.orders...), cloneOrder(*o))
	if err := s.writeTable(ordersFile, next); err != nil {
		return err
	}
	s.orders = next
	return nil
}

func (s *FileStore) CompleteOrder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Order, len(s.orders))
	copy(next, s.orders)
	for i := range next {
		if next[i].ID != id || next[i].Status != model.OrderStatusNew {
			continue
		}
		now := time.Now().UTC()
		next[i].Status = model.OrderStatusCompleted
		next[i].CompletedAt = &now
		if err := s.writeTable(ordersFile, next); err != nil {
			return err
		}
		s.orders = next
		return nil
	}
	return nil
}

func (s *FileStore) DeleteOrder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.ID != id {
			next = append(next, o)
		}
	}
	if err := s.writeTable(ordersFile, next); err != nil {
		return err
	}
	s.orders = next
	return nil
}

func cloneProduct(p model.Product) model.Product {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	p.Images = images
	return p
}

func cloneOrder(o model.Order) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		o.CompletedAt = &t
	}
	return o
}
