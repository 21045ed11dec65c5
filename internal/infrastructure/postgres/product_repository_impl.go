package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	"github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, product_name, category_id, price, description, date, active, video_url, owner_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description,
		&p.Date, &p.Active, &p.VideoURL, &p.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(p *entity.Product) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO products (product_name, category_id, price, description, active, video_url, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date
	`, p.Name, p.CategoryID, p.Price, p.Description, p.Active, p.VideoURL, p.OwnerID)
	return row.Scan(&p.ID, &p.Date)
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id)
	return scanProduct(row)
}

func (r *ProductRepository) List() ([]entity.Product, error) {
	return r.list(`SELECT ` + productColumns + ` FROM products ORDER BY date DESC`)
}

func (r *ProductRepository) ListByCategory(categoryID string) ([]entity.Product, error) {
	return r.list(`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY date DESC`, categoryID)
}

func (r *ProductRepository) list(query string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description,
			&p.Date, &p.Active, &p.VideoURL, &p.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update never touches date or owner_id.
func (r *ProductRepository) Update(p *entity.Product) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE products
		SET product_name = $1, category_id = $2, price = $3, description = $4, active = $5, video_url = $6
		WHERE id = $7
	`, p.Name, p.CategoryID, p.Price, p.Description, p.Active, p.VideoURL, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product; photos, ratings, reviews and cart items go
// with it via ON DELETE CASCADE.
func (r *ProductRepository) Delete(id string) error {
	res, err := r.pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) AddPhoto(ph *entity.ProductPhoto) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO product_photos (product_id, image_url)
		VALUES ($1, $2)
		RETURNING id
	`, ph.ProductID, ph.ImageURL)
	return row.Scan(&ph.ID)
}

func (r *ProductRepository) PhotosByProduct(productID string) ([]entity.ProductPhoto, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, product_id, image_url FROM product_photos WHERE product_id = $1
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.ProductPhoto
	for rows.Next() {
		var ph entity.ProductPhoto
		if err := rows.Scan(&ph.ID, &ph.ProductID, &ph.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, ph)
	}
	return out, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
