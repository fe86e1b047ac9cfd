package domain

import "time"

// Messages published to the pos.events exchange.

type OrderPlacedEvent struct {
	OrderID   string      `json:"order_id"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

type LowStockEvent struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	MinLevel        float64 `json:"min_level"`
	Unit            string  `json:"unit"`
}
