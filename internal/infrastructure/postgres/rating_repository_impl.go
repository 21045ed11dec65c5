package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	"github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

func (r *RatingRepository) Create(rt *entity.Rating) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO ratings (product_id, user_id, stars)
		VALUES ($1, $2, $3)
		RETURNING id
	`, rt.ProductID, rt.UserID, rt.Stars)
	return row.Scan(&rt.ID)
}

func (r *RatingRepository) ByProduct(productID string) ([]entity.Rating, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, product_id, user_id, stars FROM ratings WHERE product_id = $1
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Rating
	for rows.Next() {
		var rt entity.Rating
		if err := rows.Scan(&rt.ID, &rt.ProductID, &rt.UserID, &rt.Stars); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
