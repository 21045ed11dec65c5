package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/nurmatov/onlineshop-api/config"
	"github.com/nurmatov/onlineshop-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoUser"
	email := "demo@onlineshop.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, first_name, last_name, age, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'gold')
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, email, hash, "Demo", "User", 30).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s status=gold\n", userID, username, password)

	if _, err := db.Exec(`
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		log.Fatalf("failed to seed cart: %v", err)
	}

	categories := []string{"electronics", "books", "clothing"}
	catIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		var id string
		if err := db.QueryRow(`
			INSERT INTO categories (category_name) VALUES ($1)
			ON CONFLICT (category_name) DO UPDATE SET category_name = EXCLUDED.category_name
			RETURNING id
		`, name).Scan(&id); err != nil {
			log.Fatalf("failed to seed category %s: %v", name, err)
		}
		catIDs[name] = id
	}
	fmt.Printf("seeded %d categories\n", len(categories))

	products := []struct {
		name     string
		category string
		price    int64
		desc     string
	}{
		{"headphones", "electronics", 1200, "wireless over-ear headphones"},
		{"paperback", "books", 300, "bestselling paperback novel"},
		{"tshirt", "clothing", 450, "plain cotton t-shirt"},
	}
	for _, p := range products {
		var pid string
		if err := db.QueryRow(`
			INSERT INTO products (product_name, category_id, price, description, active, owner_id)
			VALUES ($1, $2, $3, $4, true, $5)
			RETURNING id
		`, p.name, catIDs[p.category], p.price, p.desc, userID).Scan(&pid); err != nil {
			log.Fatalf("failed to seed product %s: %v", p.name, err)
		}
		for _, stars := range []int{4, 5} {
			if _, err := db.Exec(`
				INSERT INTO ratings (product_id, user_id, stars) VALUES ($1, $2, $3)
			`, pid, userID, stars); err != nil {
				log.Fatalf("failed to seed rating for %s: %v", p.name, err)
			}
		}
	}
	fmt.Printf("seeded %d products with ratings\n", len(products))
}
