package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chickey-pos/internal/domain"
)

func entry(menuID string, qty int, reqs ...domain.IngredientRequirement) domain.CartEntry {
	return domain.CartEntry{
		Item:     domain.MenuItem{ID: menuID, Name: menuID, Ingredients: reqs},
		Quantity: qty,
	}
}

func req(invID, name string, qty float64) domain.IngredientRequirement {
	return domain.IngredientRequirement{InventoryItemID: invID, Name: name, Quantity: qty}
}

func inv(id, name string, qty float64) domain.InventoryItem {
	return domain.InventoryItem{ID: id, Name: name, Quantity: qty}
}

func TestEmptyCartIsSufficient(t *testing.T) {
	verdict := Check(nil, map[string]domain.InventoryItem{})
	assert.True(t, verdict.Sufficient)
	assert.Empty(t, verdict.InsufficientItemNames)
}

func TestDemandMultipliesAndAggregates(t *testing.T) {
	entries := []domain.CartEntry{
		entry("burger", 2, req("patty", "Chicken Patty", 1), req("bun", "Burger Bun", 1)),
		entry("double", 3, req("patty", "Chicken Patty", 2)),
	}
	demand := Demand(entries)
	assert.InDelta(t, 8, demand["patty"], 0.001) // 2*1 + 3*2
	assert.InDelta(t, 2, demand["bun"], 0.001)
}

func TestShortIngredientIsNamed(t *testing.T) {
	entries := []domain.CartEntry{entry("burger", 2, req("patty", "Chicken Patty", 1))}
	inventory := map[string]domain.InventoryItem{"patty": inv("patty", "Chicken Patty", 1)}

	verdict := Check(entries, inventory)
	assert.False(t, verdict.Sufficient)
	assert.Equal(t, []string{"Chicken Patty"}, verdict.InsufficientItemNames)
}

func TestExactStockIsSufficient(t *testing.T) {
	entries := []domain.CartEntry{entry("burger", 2, req("patty", "Chicken Patty", 1))}
	inventory := map[string]domain.InventoryItem{"patty": inv("patty", "Chicken Patty", 2)}

	assert.True(t, Check(entries, inventory).Sufficient)
}

func TestSharedIngredientDemandIsSummedBeforeComparing(t *testing.T) {
	// Each item alone fits in stock; together they do not.
	entries := []domain.CartEntry{
		entry("burger", 1, req("patty", "Chicken Patty", 1)),
		entry("sandwich", 1, req("patty", "Chicken Patty", 1)),
	}
	inventory := map[string]domain.InventoryItem{"patty": inv("patty", "Chicken Patty", 1)}

	verdict := Check(entries, inventory)
	assert.False(t, verdict.Sufficient)
	assert.Equal(t, []string{"Chicken Patty"}, verdict.InsufficientItemNames)
}

func TestMissingInventoryItemUsesRequirementName(t *testing.T) {
	entries := []domain.CartEntry{entry("burger", 1, req("truffle", "Truffle Oil", 1))}

	verdict := Check(entries, map[string]domain.InventoryItem{})
	assert.False(t, verdict.Sufficient)
	assert.Equal(t, []string{"Truffle Oil"}, verdict.InsufficientItemNames)
}

func TestShortNamesAreSorted(t *testing.T) {
	entries := []domain.CartEntry{
		entry("combo", 1,
			req("patty", "Chicken Patty", 5),
			req("bun", "Burger Bun", 5),
		),
	}
	inventory := map[string]domain.InventoryItem{
		"patty": inv("patty", "Chicken Patty", 1),
		"bun":   inv("bun", "Burger Bun", 1),
	}

	verdict := Check(entries, inventory)
	assert.Equal(t, []string{"Burger Bun", "Chicken Patty"}, verdict.InsufficientItemNames)
}

func TestFractionalRequirements(t *testing.T) {
	entries := []domain.CartEntry{entry("sandwich", 3, req("onion", "Onion", 0.5))}
	inventory := map[string]domain.InventoryItem{"onion": inv("onion", "Onion", 1)}

	verdict := Check(entries, inventory) // needs 1.5
	assert.False(t, verdict.Sufficient)
	assert.Equal(t, []string{"Onion"}, verdict.InsufficientItemNames)
}
