package repository

import (
	"context"
	"time"

	"chickey-pos/internal/domain"
)

type MenuRepository interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	InsertMenuItem(ctx context.Context, m domain.MenuItem) error
	// UpdateMenuItem replaces the item's fields and its full ingredient list.
	UpdateMenuItem(ctx context.Context, m domain.MenuItem) error
}

type InventoryRepository interface {
	ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error)
	InsertInventoryItem(ctx context.Context, it domain.InventoryItem) error
	UpdateQuantity(ctx context.Context, id string, quantity float64) error
	// DecrementQuantity subtracts, clamping at zero server-side.
	DecrementQuantity(ctx context.Context, id string, by float64) error
	AddWastage(ctx context.Context, id string, amount float64) error
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, o domain.Order) error
	InsertOrderItems(ctx context.Context, orderID string, lines []domain.OrderLine) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	OrdersBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}
