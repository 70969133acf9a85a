package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates the school-meal tables the engine reads from. The CRUD
// side of the dashboard owns the writes; the engine only ever selects.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS schools (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS modalities (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS school_modalities (
			school_id INT NOT NULL REFERENCES schools(id),
			modality_id INT NOT NULL REFERENCES modalities(id),
			enrolled_students INT NOT NULL DEFAULT 0 CHECK (enrolled_students >= 0),
			PRIMARY KEY (school_id, modality_id)
		)`,
		`CREATE TABLE IF NOT EXISTS meals (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS menus (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			modality_id INT NULL REFERENCES modalities(id),
			active BOOLEAN NOT NULL DEFAULT TRUE,
			start_date DATE NULL,
			end_date DATE NULL
		)`,
		`CREATE TABLE IF NOT EXISTS menu_meals (
			menu_id INT NOT NULL REFERENCES menus(id),
			meal_id INT NOT NULL REFERENCES meals(id),
			modality_id INT NOT NULL REFERENCES modalities(id),
			monthly_frequency INT NOT NULL DEFAULT 0 CHECK (monthly_frequency >= 0),
			PRIMARY KEY (menu_id, meal_id, modality_id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			unit_of_measure VARCHAR(50) NOT NULL DEFAULT 'kg',
			division_factor NUMERIC(12,4) NOT NULL DEFAULT 1 CHECK (division_factor > 0),
			reference_price NUMERIC(12,2) NULL CHECK (reference_price >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS meal_products (
			meal_id INT NOT NULL REFERENCES meals(id),
			product_id INT NOT NULL REFERENCES products(id),
			per_capita_quantity NUMERIC(12,4) NOT NULL DEFAULT 0 CHECK (per_capita_quantity >= 0),
			measurement_type VARCHAR(20) NOT NULL DEFAULT 'grams',
			PRIMARY KEY (meal_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS contracts (
			id SERIAL PRIMARY KEY,
			supplier_name VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contract_products (
			contract_id INT NOT NULL REFERENCES contracts(id),
			product_id INT NOT NULL REFERENCES products(id),
			price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			PRIMARY KEY (contract_id, product_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("Schema initialized")
	return nil
}
