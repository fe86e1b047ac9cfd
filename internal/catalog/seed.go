package catalog

import "chickey-pos/internal/domain"

// Bundled default dataset, used only when both the backend and the local
// cache are unavailable at load time.

func seedMenuItems() []domain.MenuItem {
	return []domain.MenuItem{
		{
			ID: "burger-classic", Name: "Classic Chicken Burger",
			Description: "Juicy chicken patty with lettuce, mayo and cheese",
			Price:       199.99, Category: domain.CategoryMain,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "chicken-patty", Name: "Chicken Patty", Quantity: 1},
				{InventoryItemID: "burger-bun", Name: "Burger Bun", Quantity: 1},
				{InventoryItemID: "cheese", Name: "Cheese", Quantity: 1},
				{InventoryItemID: "mayonnaise", Name: "Mayonnaise", Quantity: 1},
			},
		},
		{
			ID: "burger-spicy", Name: "Spicy Chicken Burger",
			Description: "Spicy chicken patty with jalapenos and hot sauce",
			Price:       249.99, Category: domain.CategoryMain,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "chicken-patty", Name: "Chicken Patty", Quantity: 1},
				{InventoryItemID: "burger-bun", Name: "Burger Bun", Quantity: 1},
				{InventoryItemID: "cheese", Name: "Cheese", Quantity: 1},
				{InventoryItemID: "sauce-packets", Name: "Hot Sauce", Quantity: 2},
			},
		},
		{
			ID: "chicken-sandwich", Name: "Chicken Sandwich",
			Description: "Grilled chicken with fresh veggies on bread",
			Price:       179.99, Category: domain.CategoryMain,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "chicken-patty", Name: "Chicken Patty", Quantity: 1},
				{InventoryItemID: "sandwich-bread", Name: "Sandwich Bread", Quantity: 2},
				{InventoryItemID: "onion", Name: "Onion", Quantity: 0.5},
				{InventoryItemID: "mayonnaise", Name: "Mayonnaise", Quantity: 1},
			},
		},
		{
			ID: "chicken-popcorn", Name: "Chicken Popcorn",
			Description: "Crispy bite-sized chicken pieces",
			Price:       149.99, Category: domain.CategorySide,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "chicken-popcorn", Name: "Chicken Popcorn", Quantity: 10},
				{InventoryItemID: "sauce-packets", Name: "Sauce", Quantity: 1},
			},
		},
		{
			ID: "french-fries", Name: "French Fries",
			Description: "Crispy, golden french fries",
			Price:       99.99, Category: domain.CategorySide,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "french-fries", Name: "French Fries", Quantity: 1},
			},
		},
		{
			ID: "veg-burger", Name: "Veggie Burger",
			Description: "Plant-based patty with fresh vegetables",
			Price:       189.99, Category: domain.CategoryMain,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "veg-burger-patty", Name: "Veg Burger Patty", Quantity: 1},
				{InventoryItemID: "burger-bun", Name: "Burger Bun", Quantity: 1},
				{InventoryItemID: "onion", Name: "Onion", Quantity: 0.5},
				{InventoryItemID: "capsicum", Name: "Capsicum", Quantity: 0.5},
				{InventoryItemID: "cheese", Name: "Cheese", Quantity: 1},
			},
		},
		{
			ID: "soda", Name: "Soda",
			Description: "Refreshing carbonated drink",
			Price:       49.99, Category: domain.CategoryDrink,
		},
		{
			ID: "ice-cream", Name: "Ice Cream",
			Description: "Creamy vanilla ice cream",
			Price:       79.99, Category: domain.CategoryDessert,
		},
	}
}

func seedInventoryItems() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: "chicken-patty", Name: "Chicken Patty", Quantity: 50, Unit: "pieces", MinLevel: 10, Category: "meat"},
		{ID: "chicken-popcorn", Name: "Chicken Popcorn", Quantity: 200, Unit: "pieces", MinLevel: 50, Category: "meat"},
		{ID: "french-fries", Name: "French Fries", Quantity: 40, Unit: "servings", MinLevel: 10, Category: "other"},
		{ID: "sandwich-bread", Name: "Sandwich Bread", Quantity: 60, Unit: "slices", MinLevel: 20, Category: "bread"},
		{ID: "burger-bun", Name: "Burger Bun", Quantity: 40, Unit: "pieces", MinLevel: 15, Category: "bread"},
		{ID: "veg-burger-patty", Name: "Veg Burger Patty", Quantity: 25, Unit: "pieces", MinLevel: 10, Category: "vegetable"},
		{ID: "onion", Name: "Onion", Quantity: 20, Unit: "pieces", MinLevel: 5, Category: "vegetable"},
		{ID: "capsicum", Name: "Capsicum", Quantity: 15, Unit: "pieces", MinLevel: 5, Category: "vegetable"},
		{ID: "cheese", Name: "Cheese", Quantity: 60, Unit: "slices", MinLevel: 20, Category: "dairy"},
		{ID: "mayonnaise", Name: "Mayonnaise", Quantity: 40, Unit: "servings", MinLevel: 10, Category: "condiment"},
		{ID: "sauce-packets", Name: "Sauce Packets", Quantity: 100, Unit: "packets", MinLevel: 30, Category: "condiment"},
	}
}
