package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(100) UNIQUE NOT NULL,
			hashed_password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			middle_name VARCHAR(100),
			last_name VARCHAR(100) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create sneakers table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sneakers (
			id BIGSERIAL PRIMARY KEY,
			sku VARCHAR(100) NOT NULL,
			brand VARCHAR(100) NOT NULL,
			model VARCHAR(200) NOT NULL,
			size DOUBLE PRECISION NOT NULL,
			color VARCHAR(100),
			purchase_price DOUBLE PRECISION,
			description TEXT,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create propositions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS propositions (
			id BIGSERIAL PRIMARY KEY,
			seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			buyer_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			sneaker_id BIGINT NOT NULL REFERENCES sneakers(id) ON DELETE CASCADE,
			value DOUBLE PRECISION NOT NULL,
			agreed_datetime TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sneakers_user_id ON sneakers(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_sneakers_sku ON sneakers(sku)",
		"CREATE INDEX IF NOT EXISTS idx_propositions_seller_id ON propositions(seller_id)",
		"CREATE INDEX IF NOT EXISTS idx_propositions_buyer_id ON propositions(buyer_id)",
		"CREATE INDEX IF NOT EXISTS idx_propositions_sneaker_id ON propositions(sneaker_id)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
