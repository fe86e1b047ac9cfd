package cart

import (
	"sync"

	"chickey-pos/internal/domain"
)

// Cart tracks the in-progress selection for the active session. Entries keep
// insertion order and hold full menu item snapshots, so totals use the price
// from when the item was added. The cart is never persisted to the backend.
type Cart struct {
	mu      sync.Mutex
	entries []domain.CartEntry
}

func New() *Cart { return &Cart{} }

// Add inserts a new entry with quantity 1, or increments the existing entry
// for the same menu item id. It never fails.
func (c *Cart) Add(item domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].Item.ID == item.ID {
			c.entries[i].Quantity++
			return
		}
	}
	c.entries = append(c.entries, domain.CartEntry{Item: item, Quantity: 1})
}

// Remove deletes the entry outright regardless of quantity. Removing an
// absent id is a no-op.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

// SetQuantity replaces an entry's quantity; q <= 0 removes the entry.
// Unknown ids are ignored.
func (c *Cart) SetQuantity(id string, q int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if q <= 0 {
		c.removeLocked(id)
		return
	}
	for i := range c.entries {
		if c.entries[i].Item.ID == id {
			c.entries[i].Quantity = q
			return
		}
	}
}

func (c *Cart) removeLocked(id string) {
	for i := range c.entries {
		if c.entries[i].Item.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called after a successful commit.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Checkout passes a copy of the current entries to commit and clears the cart
// only when commit returns nil. The lock is held across the whole sequence, so
// an Add racing on another request goroutine lands either before the snapshot
// or after the clear, never in between.
func (c *Cart) Checkout(commit func(entries []domain.CartEntry) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]domain.CartEntry, len(c.entries))
	copy(entries, c.entries)
	if err := commit(entries); err != nil {
		return err
	}
	c.entries = nil
	return nil
}

// Entries returns a copy in insertion order.
func (c *Cart) Entries() []domain.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Total is the sum of snapshotted price times quantity over all entries.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, e := range c.entries {
		total += e.Item.Price * float64(e.Quantity)
	}
	return total
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
