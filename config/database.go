package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			phone_number VARCHAR(20) UNIQUE NOT NULL,
			display_name VARCHAR(100),
			prompt_pay_id VARCHAR(20),
			prompt_pay_type VARCHAR(20) DEFAULT 'PHONE',
			profile_picture_url TEXT,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			refresh_token VARCHAR(500) UNIQUE NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS trips (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			code VARCHAR(6) UNIQUE NOT NULL,
			created_by UUID REFERENCES users(id),
			is_archived BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS trip_members (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			trip_id UUID REFERENCES trips(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			joined_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(trip_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS sub_groups (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			trip_id UUID REFERENCES trips(id) ON DELETE CASCADE,
			name VARCHAR(50) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sub_group_members (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			sub_group_id UUID REFERENCES sub_groups(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			joined_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(sub_group_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			trip_id UUID REFERENCES trips(id) ON DELETE CASCADE,
			paid_by_user_id UUID REFERENCES users(id),
			title VARCHAR(100) NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			split_type VARCHAR(20) DEFAULT 'EQUAL',
			split_target VARCHAR(20) DEFAULT 'ALL',
			split_group_id UUID REFERENCES sub_groups(id),
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// Frozen per-member amounts; rows exist only for CUSTOM expenses.
		`CREATE TABLE IF NOT EXISTS expense_shares (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			expense_id UUID REFERENCES expenses(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id),
			owes_amount NUMERIC(10,2) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			trip_id UUID REFERENCES trips(id) ON DELETE CASCADE,
			from_user_id UUID REFERENCES users(id),
			to_user_id UUID REFERENCES users(id),
			amount NUMERIC(10,2) NOT NULL,
			slip_url TEXT,
			status VARCHAR(20) DEFAULT 'PENDING',
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trip_members_trip_id ON trip_members(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trip_members_user_id ON trip_members(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sub_group_members_sub_group_id ON sub_group_members(sub_group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_trip_id ON expenses(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expense_shares_expense_id ON expense_shares(expense_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_trip_id ON payments(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_code ON trips(code)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
