// Package catalog provides the product model and the PostgreSQL repository
// behind the storefront.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	ListVisible(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id string, f UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productCols = `id, name, description, price::text, category, image_url, stock_quantity, is_hidden, created_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.ImageURL, &p.StockQuantity, &p.IsHidden, &p.CreatedAt)
}

func (r *PGRepo) list(ctx context.Context, onlyVisible bool) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE ($1 = false OR is_hidden = false)
		ORDER BY created_at DESC
	`, onlyVisible)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListVisible returns every product with is_hidden=false (customer pages).
func (r *PGRepo) ListVisible(ctx context.Context) ([]Product, error) {
	return r.list(ctx, true)
}

// ListAll includes hidden products (admin views).
func (r *PGRepo) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, false)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products WHERE id=$1
	`, id), &p)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanProduct(r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, category, image_url, stock_quantity, is_hidden, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
		RETURNING `+productCols+`
	`, p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.StockQuantity, p.IsHidden), p)
}

// Update applies a partial update: nil fields fall through to the stored
// value via COALESCE. Returns the updated row or ErrNotFound.
func (r *PGRepo) Update(ctx context.Context, id string, f UpdateProductRequest) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := scanProduct(r.db.QueryRow(ctx, `
		UPDATE products
		SET name           = COALESCE($2, name),
		    description    = COALESCE($3, description),
		    price          = COALESCE($4::numeric, price),
		    category       = COALESCE($5, category),
		    image_url      = COALESCE($6, image_url),
		    stock_quantity = COALESCE($7, stock_quantity),
		    is_hidden      = COALESCE($8, is_hidden)
		WHERE id = $1
		RETURNING `+productCols+`
	`, id, f.Name, f.Description, f.Price, f.Category, f.ImageURL, f.StockQuantity, f.IsHidden), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
