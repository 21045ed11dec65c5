package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	"github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(rv *entity.Review) error {
	var parent any
	if rv.ParentReviewID != "" {
		parent = rv.ParentReviewID
	}
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO reviews (author_id, text, product_id, parent_review_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_date
	`, rv.AuthorID, rv.Text, rv.ProductID, parent)
	return row.Scan(&rv.ID, &rv.CreatedDate)
}

func (r *ReviewRepository) GetByID(id string) (*entity.Review, error) {
	rv := &entity.Review{}
	var parent *string
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, author_id, text, product_id, parent_review_id, created_date
		FROM reviews WHERE id = $1
	`, id)
	if err := row.Scan(&rv.ID, &rv.AuthorID, &rv.Text, &rv.ProductID, &parent, &rv.CreatedDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if parent != nil {
		rv.ParentReviewID = *parent
	}
	return rv, nil
}

func (r *ReviewRepository) ByProduct(productID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, author_id, text, product_id, parent_review_id, created_date
		FROM reviews WHERE product_id = $1 ORDER BY created_date
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Review
	for rows.Next() {
		var rv entity.Review
		var parent *string
		if err := rows.Scan(&rv.ID, &rv.AuthorID, &rv.Text, &rv.ProductID, &parent, &rv.CreatedDate); err != nil {
			return nil, err
		}
		if parent != nil {
			rv.ParentReviewID = *parent
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
