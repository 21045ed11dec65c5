package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	"github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Create(c *entity.Cart) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO carts (user_id)
		VALUES ($1)
		RETURNING id, created_date
	`, c.UserID)
	if err := row.Scan(&c.ID, &c.CreatedDate); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *CartRepository) GetByUser(userID string) (*entity.Cart, error) {
	c := &entity.Cart{}
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, user_id, created_date FROM carts WHERE user_id = $1
	`, userID)
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CartRepository) AddItem(it *entity.CartItem) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, it.CartID, it.ProductID, it.Quantity)
	return row.Scan(&it.ID)
}

const itemWithProduct = `
	SELECT i.id, i.cart_id, i.product_id, i.quantity,
	       p.id, p.product_name, p.category_id, p.price, p.description,
	       p.date, p.active, p.video_url, p.owner_id
	FROM cart_items i
	JOIN products p ON p.id = i.product_id
`

func scanItemWithProduct(row pgx.Row) (*entity.CartItem, error) {
	it := &entity.CartItem{Product: &entity.Product{}}
	p := it.Product
	err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity,
		&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description,
		&p.Date, &p.Active, &p.VideoURL, &p.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *CartRepository) GetItem(id string) (*entity.CartItem, error) {
	row := r.pool.QueryRow(context.Background(), itemWithProduct+` WHERE i.id = $1`, id)
	return scanItemWithProduct(row)
}

// Items joins each row with the current product record; line totals always
// follow the live price.
func (r *CartRepository) Items(cartID string) ([]entity.CartItem, error) {
	rows, err := r.pool.Query(context.Background(), itemWithProduct+` WHERE i.cart_id = $1 ORDER BY i.id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.CartItem
	for rows.Next() {
		it := entity.CartItem{Product: &entity.Product{}}
		p := it.Product
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity,
			&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description,
			&p.Date, &p.Active, &p.VideoURL, &p.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CartRepository) UpdateItemQuantity(id string, quantity int) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE cart_items SET quantity = $1 WHERE id = $2
	`, quantity, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) RemoveItem(id string) error {
	res, err := r.pool.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
