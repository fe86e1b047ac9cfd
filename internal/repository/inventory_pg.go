package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chickey-pos/internal/domain"
)

type InventoryPG struct {
	db *sql.DB
}

func NewInventoryPG(db *sql.DB) InventoryRepository { return &InventoryPG{db: db} }

func (r *InventoryPG) ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, quantity, unit, min_level, category, COALESCE(wastages, 0)
FROM inventory_items
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.MinLevel, &it.Category, &it.Wastage); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *InventoryPG) InsertInventoryItem(ctx context.Context, it domain.InventoryItem) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO inventory_items (id, name, quantity, unit, min_level, category)
VALUES ($1, $2, $3, $4, $5, $6)
`, it.ID, it.Name, it.Quantity, it.Unit, it.MinLevel, it.Category)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item %s: %w", it.Name, err)
	}
	return nil
}

func (r *InventoryPG) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE inventory_items SET quantity = $2 WHERE id = $1
`, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("inventory item %s not found", id)
	}
	return nil
}

func (r *InventoryPG) DecrementQuantity(ctx context.Context, id string, by float64) error {
	// GREATEST keeps the stored quantity from ever going negative, even if a
	// concurrent commit raced us past the sufficiency check.
	_, err := r.db.ExecContext(ctx, `
UPDATE inventory_items SET quantity = GREATEST(quantity - $2, 0) WHERE id = $1
`, id, by)
	if err != nil {
		return fmt.Errorf("failed to decrement inventory item %s: %w", id, err)
	}
	return nil
}

func (r *InventoryPG) AddWastage(ctx context.Context, id string, amount float64) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE inventory_items SET wastages = COALESCE(wastages, 0) + $2 WHERE id = $1
`, id, amount)
	if err != nil {
		return fmt.Errorf("failed to record wastage for %s: %w", id, err)
	}
	return nil
}
