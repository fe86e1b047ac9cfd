package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chickey-pos/internal/domain"
)

type MenuPG struct {
	db *sql.DB
}

func NewMenuPG(db *sql.DB) MenuRepository { return &MenuPG{db: db} }

func (r *MenuPG) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, price, category
FROM menu_items
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	index := make(map[string]int)
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		index[m.ID] = len(items)
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Ingredient requirements, with the display name joined in from the
	// inventory row when it still exists.
	ingRows, err := r.db.QueryContext(ctx, `
SELECT mi.menu_item_id, mi.inventory_item_id, COALESCE(ii.name, mi.inventory_item_id), mi.quantity
FROM menu_item_ingredients mi
LEFT JOIN inventory_items ii ON ii.id = mi.inventory_item_id
`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu item ingredients: %w", err)
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var menuID string
		var req domain.IngredientRequirement
		if err := ingRows.Scan(&menuID, &req.InventoryItemID, &req.Name, &req.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		if i, ok := index[menuID]; ok {
			items[i].Ingredients = append(items[i].Ingredients, req)
		}
	}
	return items, ingRows.Err()
}

func (r *MenuPG) InsertMenuItem(ctx context.Context, m domain.MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO menu_items (id, name, description, price, category)
VALUES ($1, $2, $3, $4, $5)
`, m.ID, m.Name, m.Description, m.Price, m.Category)
	if err != nil {
		return fmt.Errorf("failed to insert menu item %s: %w", m.Name, err)
	}
	return r.insertIngredients(ctx, m)
}

// UpdateMenuItem rewrites the item row, then deletes and reinserts its
// ingredient links rather than diffing them.
func (r *MenuPG) UpdateMenuItem(ctx context.Context, m domain.MenuItem) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE menu_items SET name = $2, description = $3, price = $4, category = $5 WHERE id = $1
`, m.ID, m.Name, m.Description, m.Price, m.Category)
	if err != nil {
		return fmt.Errorf("failed to update menu item %s: %w", m.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("menu item %s not found", m.ID)
	}
	if _, err := r.db.ExecContext(ctx, `
DELETE FROM menu_item_ingredients WHERE menu_item_id = $1
`, m.ID); err != nil {
		return fmt.Errorf("failed to clear ingredients for %s: %w", m.ID, err)
	}
	return r.insertIngredients(ctx, m)
}

func (r *MenuPG) insertIngredients(ctx context.Context, m domain.MenuItem) error {
	for _, req := range m.Ingredients {
		if _, err := r.db.ExecContext(ctx, `
INSERT INTO menu_item_ingredients (menu_item_id, inventory_item_id, quantity)
VALUES ($1, $2, $3)
`, m.ID, req.InventoryItemID, req.Quantity); err != nil {
			return fmt.Errorf("failed to insert ingredient %s for %s: %w", req.InventoryItemID, m.ID, err)
		}
	}
	return nil
}
