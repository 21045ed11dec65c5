package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	"github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(c *entity.Category) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING id
	`, c.Name)
	if err := row.Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) GetByID(id string) (*entity.Category, error) {
	c := &entity.Category{}
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, category_name FROM categories WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) List() ([]entity.Category, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, category_name FROM categories ORDER BY category_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
