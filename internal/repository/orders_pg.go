package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chickey-pos/internal/domain"
)

type OrdersPG struct {
	db *sql.DB
}

func NewOrdersPG(db *sql.DB) OrderRepository { return &OrdersPG{db: db} }

// InsertOrder and InsertOrderItems are deliberately separate calls: the order
// row must be durable before its items are attempted so items always have a
// valid parent. The commit flow relies on this ordering, not on a
// multi-statement transaction.
func (r *OrdersPG) InsertOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id, total, timestamp) VALUES ($1, $2, $3)
`, o.ID, o.Total, o.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrdersPG) InsertOrderItems(ctx context.Context, orderID string, lines []domain.OrderLine) error {
	for _, line := range lines {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO order_items (order_id, menu_item_id, name, price, quantity)
VALUES ($1, $2, $3, $4, $5)
`, orderID, line.MenuItemID, line.Name, line.Price, line.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", line.Name, err)
		}
	}
	return nil
}

func (r *OrdersPG) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.total, o.timestamp, oi.menu_item_id, oi.name, oi.price, oi.quantity
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.id
ORDER BY o.timestamp, oi.id
`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *OrdersPG) OrdersBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.total, o.timestamp, oi.menu_item_id, oi.name, oi.price, oi.quantity
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.id
WHERE o.timestamp >= $1 AND o.timestamp < $2
ORDER BY o.timestamp, oi.id
`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders between %s and %s: %w", from, to, err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	index := make(map[string]int)
	for rows.Next() {
		var (
			o        domain.Order
			menuID   sql.NullString
			name     sql.NullString
			price    sql.NullFloat64
			quantity sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.Total, &o.Timestamp, &menuID, &name, &price, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		i, ok := index[o.ID]
		if !ok {
			i = len(orders)
			index[o.ID] = i
			orders = append(orders, o)
		}
		if menuID.Valid {
			orders[i].Lines = append(orders[i].Lines, domain.OrderLine{
				MenuItemID: menuID.String,
				Name:       name.String,
				Price:      price.Float64,
				Quantity:   int(quantity.Int64),
			})
		}
	}
	return orders, rows.Err()
}
