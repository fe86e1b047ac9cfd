package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownMenuItem      = errors.New("unknown menu item")
	ErrUnknownInventoryItem = errors.New("unknown inventory item")
)

// InsufficientStockError blocks a commit before any state changes. It carries
// the display names of the short ingredients.
type InsufficientStockError struct {
	ShortItems []string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock: " + strings.Join(e.ShortItems, ", ")
}

// NegativeQuantityError rejects a manual inventory update before any mutation.
type NegativeQuantityError struct {
	Quantity float64
}

func (e *NegativeQuantityError) Error() string {
	return fmt.Sprintf("quantity cannot be negative: %v", e.Quantity)
}

// ValidationError rejects a malformed catalog-management request (blank name,
// invalid category, missing ingredients) before anything is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// RemoteFetchError reports a failed catalog/inventory/order load. The caller
// has already fallen back to the cache or the bundled defaults; the error is
// informational, not fatal.
type RemoteFetchError struct {
	Resource string
	Err      error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("remote fetch of %s failed: %v", e.Resource, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// Stages of a remote write, recorded on persistence warnings.
const (
	StageOrder         = "order"
	StageOrderItems    = "order_items"
	StageInventory     = "inventory_decrement"
	StageInventoryEdit = "inventory_update"
	StageWastage       = "inventory_wastage"
)

// PersistenceWarning records a remote write that failed after the local state
// had already been committed. It is reported out of band, never returned as an
// error: local state is kept regardless.
type PersistenceWarning struct {
	Stage   string    `json:"stage"`
	OrderID string    `json:"order_id,omitempty"`
	ItemID  string    `json:"item_id,omitempty"`
	Cause   string    `json:"cause"`
	At      time.Time `json:"at"`
}
