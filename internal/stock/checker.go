// Package stock answers whether a cart can be fulfilled from the current
// inventory snapshot. Pure functions, re-evaluated on every call: verdicts
// are never cached across cart or inventory mutations.
package stock

import (
	"sort"

	"chickey-pos/internal/domain"
)

// Demand aggregates per-ingredient consumption across the cart: each entry's
// requirements multiplied by its quantity, summed over entries that share an
// ingredient. Keyed by inventory item id.
func Demand(entries []domain.CartEntry) map[string]float64 {
	demand := make(map[string]float64)
	for _, e := range entries {
		for _, req := range e.Item.Ingredients {
			demand[req.InventoryItemID] += req.Quantity * float64(e.Quantity)
		}
	}
	return demand
}

// Check compares the cart's aggregate demand against the inventory snapshot.
// An ingredient missing from the snapshot counts as insufficient. The empty
// cart is trivially sufficient. Short item names are sorted for deterministic
// output.
func Check(entries []domain.CartEntry, inventory map[string]domain.InventoryItem) domain.StockVerdict {
	var short []string
	for id, need := range Demand(entries) {
		item, ok := inventory[id]
		if ok && item.Quantity >= need {
			continue
		}
		short = append(short, displayName(entries, inventory, id))
	}
	sort.Strings(short)
	return domain.StockVerdict{Sufficient: len(short) == 0, InsufficientItemNames: short}
}

func displayName(entries []domain.CartEntry, inventory map[string]domain.InventoryItem, id string) string {
	if item, ok := inventory[id]; ok && item.Name != "" {
		return item.Name
	}
	for _, e := range entries {
		for _, req := range e.Item.Ingredients {
			if req.InventoryItemID == id && req.Name != "" {
				return req.Name
			}
		}
	}
	return id
}
