package domain

type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

type SetCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CreateMenuItemRequest creates a menu item without ingredients; they are
// attached afterwards through an update.
type CreateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
}

// UpdateMenuItemRequest replaces the item's fields and its full ingredient
// list; at least one ingredient is required.
type UpdateMenuItemRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Price       float64                 `json:"price"`
	Category    Category                `json:"category"`
	Ingredients []IngredientRequirement `json:"ingredients"`
}

type CreateInventoryItemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	MinLevel float64 `json:"min_level"`
	Category string  `json:"category"`
}

type SetInventoryQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

type RecordWastageRequest struct {
	Amount float64 `json:"amount"`
}

type CartResponse struct {
	Entries []CartEntry  `json:"entries"`
	Total   float64      `json:"total"`
	Stock   StockVerdict `json:"stock"`
}

type OrderReportResponse struct {
	Date   string  `json:"date"`
	Orders []Order `json:"orders"`
	Source string  `json:"source"` // remote | local
}

type RefreshResponse struct {
	Source string `json:"source"` // remote | cache | defaults
	Error  string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error      string   `json:"error"`
	ShortItems []string `json:"short_items,omitempty"`
}
