// seed inserts the default categories, a demo user, and a handful of
// expenses and limits into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

var categories = []string{
	"Food",
	"Housing",
	"Transport",
	"Health",
	"Leisure",
	"Education",
	"Other",
}

type expenseSpec struct {
	category    string
	description string
	amount      float64
}

var expenses = []expenseSpec{
	{"Food", "groceries", 320.40},
	{"Food", "restaurant", 89.90},
	{"Housing", "rent", 1200.00},
	{"Transport", "bus pass", 95.00},
	{"Leisure", "cinema", 42.00},
}

type limitSpec struct {
	category string
	amount   float64
}

var limits = []limitSpec{
	{"Food", 400.00},
	{"Transport", 150.00},
	{"Leisure", 100.00},
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := postgres.RunMigrations(dbURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// Categories, idempotent
	catIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			name,
		).Scan(&id)
		if err != nil {
			log.Fatalf("upsert category %s: %v", name, err)
		}
		catIDs[name] = id
	}

	// Demo user
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, birthdate)
		VALUES ('Seed User', $1, $2, '1995-04-12')
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Records land in the current month so they stay open for delete tests.
	refMonth := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)

	var insertedExpenses int
	for _, spec := range expenses {
		tag, err := pool.Exec(ctx, `
			INSERT INTO expenses (user_id, category_id, description, amount, reference_month)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (
				SELECT 1 FROM expenses
				WHERE user_id = $1 AND description = $3 AND reference_month = $5
			)`,
			userID, catIDs[spec.category], spec.description, spec.amount, refMonth,
		)
		if err != nil {
			log.Fatalf("insert expense %s: %v", spec.description, err)
		}
		insertedExpenses += int(tag.RowsAffected())
	}

	var insertedLimits int
	for _, spec := range limits {
		tag, err := pool.Exec(ctx, `
			INSERT INTO user_limits (user_id, category_id, amount, reference_month)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (
				SELECT 1 FROM user_limits
				WHERE user_id = $1 AND category_id = $2 AND reference_month = $4
			)`,
			userID, catIDs[spec.category], spec.amount, refMonth,
		)
		if err != nil {
			log.Fatalf("insert limit %s: %v", spec.category, err)
		}
		insertedLimits += int(tag.RowsAffected())
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Expenses: %d inserted\n", insertedExpenses)
	fmt.Printf("  Limits:   %d inserted\n", insertedLimits)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — sign in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/signin \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list this month's expenses:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Printf("    curl -s http://localhost:8080/expense/month/%s -H \"Authorization: Bearer $JWT\"\n",
		refMonth.Format("02-01-2006"))
	fmt.Println()
	fmt.Println("  Step 3 — try deleting one of them; a record in a past month is refused.")
}
