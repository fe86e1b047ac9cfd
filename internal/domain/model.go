package domain

import "time"

type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMain, CategorySide, CategoryDrink, CategoryDessert:
		return true
	}
	return false
}

// IngredientRequirement is the amount of one inventory item consumed per unit
// of a menu item sold. Name is a display snapshot so a short ingredient can be
// named even when the inventory row is missing.
type IngredientRequirement struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"` // > 0, fractional allowed
}

type MenuItem struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Price       float64                 `json:"price"`
	Category    Category                `json:"category"`
	Ingredients []IngredientRequirement `json:"ingredients,omitempty"`
}

// InventoryItem is a stocked ingredient. Quantity must never go negative:
// every mutation clamps or rejects first. Wastage is informational
// bookkeeping only and is never consulted by the stock check.
type InventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	MinLevel float64 `json:"min_level"`
	Category string  `json:"category"`
	Wastage  float64 `json:"wastage"`
}

// CartEntry holds a full MenuItem snapshot so mid-session price edits do not
// alter an in-progress cart.
type CartEntry struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"` // >= 1
}

// OrderLine is a point-in-time snapshot; it does not track back to the live
// menu item after the order is committed.
type OrderLine struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Order is immutable once created. Total is computed once at commit time.
type Order struct {
	ID        string      `json:"id"`
	Lines     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

// Stats are the lifetime aggregate counters, recomputed from the order
// history on load and incremented optimistically on each commit.
type Stats struct {
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

// StockVerdict answers whether a cart is fulfillable from current inventory.
type StockVerdict struct {
	Sufficient            bool     `json:"sufficient"`
	InsufficientItemNames []string `json:"insufficient_item_names,omitempty"`
}
