package repository

import (
	"database/sql"
	"fmt"
)

// Migrate creates the backend collections if they do not exist yet.
func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			quantity NUMERIC NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			unit TEXT NOT NULL DEFAULT '',
			min_level NUMERIC NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			wastages NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL CHECK (price >= 0),
			category TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS menu_item_ingredients (
			menu_item_id TEXT NOT NULL REFERENCES menu_items(id),
			inventory_item_id TEXT NOT NULL REFERENCES inventory_items(id),
			quantity NUMERIC NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (menu_item_id, inventory_item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			total NUMERIC NOT NULL,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			menu_item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price NUMERIC NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders(timestamp)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
