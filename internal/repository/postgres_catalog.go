package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danil228cmd/danisa-shop-bot/internal/model"
)

func (s *Postgres) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	c := &model.Category{Name: name}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`,
		name,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *Postgres) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *Postgres) Subcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	query := `SELECT id, category_id, name, created_at FROM subcategories ORDER BY id`
	args := []any{}
	if categoryID != 0 {
		query = `SELECT id, category_id, name, created_at FROM subcategories WHERE category_id = $1 ORDER BY id`
		args = append(args, categoryID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	out := make([]model.Subcategory, 0)
	for rows.Next() {
		var sc model.Subcategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateSubcategory(ctx context.Context, categoryID int64, name string) (*model.Subcategory, error) {
	sc := &model.Subcategory{CategoryID: categoryID, Name: name}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO subcategories (category_id, name) VALUES ($1, $2) RETURNING id, created_at`,
		categoryID, name,
	).Scan(&sc.ID, &sc.CreatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return nil, ErrDuplicateName
		case pgForeignKeyViolation:
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return sc, nil
}

func (s *Postgres) DeleteSubcategory(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

func (s *Postgres) Products(ctx context.Context, subcategoryID int64) ([]model.Product, error) {
	query := `SELECT id, subcategory_id, name, description, price, main_image, images, created_at
		FROM products ORDER BY id`
	args := []any{}
	if subcategoryID != 0 {
		query = `SELECT id, subcategory_id, name, description, price, main_image, images, created_at
			FROM products WHERE subcategory_id = $1 ORDER BY id`
		args = append(args, subcategoryID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Postgres) Product(ctx context.Context, id int64) (*model.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, subcategory_id, name, description, price, main_image, images, created_at
		 FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var images string
	err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.Description, &p.Price,
		&p.MainImage, &images, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.Images = decodeImages(images)
	return &p, nil
}

func decodeImages(raw string) []string {
	images := []string{}
	if raw != "" {
		// Stored by this process; a decode failure means a hand-edited
		// row, treat it as no images.
		_ = json.Unmarshal([]byte(raw), &images)
	}
	return images
}

func (s *Postgres) CreateProduct(ctx context.Context, p *model.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO products (subcategory_id, name, description, price, main_image, images)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		p.SubcategoryID, p.Name, p.Description, p.Price, p.MainImage, string(images),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE products SET
			name = CASE WHEN $2 = '' THEN name ELSE $2 END,
			description = CASE WHEN $3 = '' THEN description ELSE $3 END,
			price = CASE WHEN $4::numeric <= 0 THEN price ELSE $4::numeric END
		 WHERE id = $1`,
		id, upd.Name, upd.Description, upd.Price,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteProduct removes the product and strips it from every saved cart
// in the same transaction, so a storage failure leaves carts untouched.
func (s *Postgres) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT telegram_user_id, items FROM carts`)
	if err != nil {
		return fmt.Errorf("list carts: %w", err)
	}

	type cartRow struct {
		userID string
		items  []model.CartItem
	}
	var dirty []cartRow
	for rows.Next() {
		var userID, raw string
		if err := rows.Scan(&userID, &raw); err != nil {
			rows.Close()
			return fmt.Errorf("scan cart: %w", err)
		}
		items := decodeCartItems(raw)
		kept := items[:0]
		for _, it := range items {
			if it.ProductID != id {
				kept = append(kept, it)
			}
		}
		if len(kept) != len(items) {
			dirty = append(dirty, cartRow{userID: userID, items: kept})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list carts: %w", err)
	}

	for _, c := range dirty {
		raw, err := json.Marshal(c.items)
		if err != nil {
			return fmt.Errorf("encode cart items: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE carts SET items = $2, updated_at = NOW() WHERE telegram_user_id = $1`,
			c.userID, string(raw),
		); err != nil {
			return fmt.Errorf("update cart: %w", err)
		}
	}

	return tx.Commit(ctx)
}
