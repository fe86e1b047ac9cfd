package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"chickey-pos/internal/cache"
	"chickey-pos/internal/domain"
	"chickey-pos/internal/logger"
	"chickey-pos/internal/repository"
)

// Load sources, reported on RefreshResponse.
const (
	SourceRemote   = "remote"
	SourceCache    = "cache"
	SourceDefaults = "defaults"
)

// Store holds the current known menu and inventory snapshot. The order
// processor mirrors decrements into it and the inventory mutator edits it
// directly; both write through to the snapshot cache.
type Store struct {
	mu        sync.RWMutex
	menu      []domain.MenuItem
	inventory map[string]domain.InventoryItem
	invOrder  []string
	source    string

	menuRepo repository.MenuRepository
	invRepo  repository.InventoryRepository
	cache    cache.Store
	lg       *logger.Logger
}

func NewStore(menuRepo repository.MenuRepository, invRepo repository.InventoryRepository, c cache.Store, lg *logger.Logger) *Store {
	return &Store{
		inventory: make(map[string]domain.InventoryItem),
		menuRepo:  menuRepo,
		invRepo:   invRepo,
		cache:     c,
		lg:        lg,
	}
}

// Load fetches the menu and inventory from the backend, falling back to the
// local cache and then to the bundled defaults. A non-nil error is always a
// *domain.RemoteFetchError and the store is still usable: the fallback has
// been applied.
func (s *Store) Load(ctx context.Context) error {
	menu, errMenu := s.menuRepo.ListMenuItems(ctx)
	items, errInv := s.invRepo.ListInventoryItems(ctx)
	if errMenu == nil && errInv == nil {
		s.replace(menu, items, SourceRemote)
		s.writeThrough(ctx)
		s.lg.Info("catalog_loaded", map[string]any{"source": SourceRemote, "menu_items": len(menu), "inventory_items": len(items)})
		return nil
	}

	resource, cause := "menu_items", errMenu
	if errMenu == nil {
		resource, cause = "inventory_items", errInv
	}

	if s.loadFromCache(ctx) {
		s.lg.Error("catalog_load_fallback", cause, map[string]any{"source": SourceCache})
		return &domain.RemoteFetchError{Resource: resource, Err: cause}
	}

	s.replace(seedMenuItems(), seedInventoryItems(), SourceDefaults)
	s.lg.Error("catalog_load_fallback", cause, map[string]any{"source": SourceDefaults})
	return &domain.RemoteFetchError{Resource: resource, Err: cause}
}

// Refresh is the user-triggered re-fetch; same semantics as Load.
func (s *Store) Refresh(ctx context.Context) error { return s.Load(ctx) }

func (s *Store) loadFromCache(ctx context.Context) bool {
	menuRaw, err := s.cache.Get(ctx, cache.KeyMenu)
	if err != nil {
		return false
	}
	invRaw, err := s.cache.Get(ctx, cache.KeyInventory)
	if err != nil {
		return false
	}
	var menu []domain.MenuItem
	var items []domain.InventoryItem
	if json.Unmarshal(menuRaw, &menu) != nil || json.Unmarshal(invRaw, &items) != nil {
		return false
	}
	s.replace(menu, items, SourceCache)
	return true
}

func (s *Store) replace(menu []domain.MenuItem, items []domain.InventoryItem, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = menu
	s.inventory = make(map[string]domain.InventoryItem, len(items))
	s.invOrder = s.invOrder[:0]
	for _, it := range items {
		s.inventory[it.ID] = it
		s.invOrder = append(s.invOrder, it.ID)
	}
	s.source = source
}

func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Store) MenuItems() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

func (s *Store) MenuItem(id string) (domain.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.menu {
		if m.ID == id {
			return m, true
		}
	}
	return domain.MenuItem{}, false
}

func (s *Store) InventoryItems() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryItem, 0, len(s.invOrder))
	for _, id := range s.invOrder {
		out = append(out, s.inventory[id])
	}
	return out
}

func (s *Store) InventoryItem(id string) (domain.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.inventory[id]
	return it, ok
}

// InventorySnapshot returns a copy keyed by id, for the stock checker.
func (s *Store) InventorySnapshot() map[string]domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.InventoryItem, len(s.inventory))
	for id, it := range s.inventory {
		out[id] = it
	}
	return out
}

// LowStock lists items at or below their minimum level, sorted by name.
func (s *Store) LowStock() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryItem
	for _, id := range s.invOrder {
		if it := s.inventory[id]; it.Quantity <= it.MinLevel {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetQuantity replaces an item's quantity. Returns false for an unknown id.
// Negative input is the caller's problem to reject; the store clamps anyway.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity float64) bool {
	if quantity < 0 {
		quantity = 0
	}
	s.mu.Lock()
	it, ok := s.inventory[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	it.Quantity = quantity
	s.inventory[id] = it
	s.mu.Unlock()
	s.writeThroughInventory(ctx)
	return true
}

// ApplyDecrement subtracts from an item's quantity, clamped at zero. Used by
// the order processor to mirror remote decrements so subsequent stock checks
// see up-to-date numbers without a full reload.
func (s *Store) ApplyDecrement(ctx context.Context, id string, by float64) bool {
	s.mu.Lock()
	it, ok := s.inventory[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	it.Quantity -= by
	if it.Quantity < 0 {
		it.Quantity = 0
	}
	s.inventory[id] = it
	s.mu.Unlock()
	s.writeThroughInventory(ctx)
	return true
}

// Catalog management is remote-first, the opposite of the order flow: the
// backend row must exist before the local snapshot shows it, so a failed write
// surfaces as an error and nothing changes locally.

// CreateMenuItem inserts a new menu item with no ingredients; they are
// attached through UpdateMenuItem afterwards.
func (s *Store) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItem, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "name and description are required"}
	}
	if req.Price < 0 {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "price cannot be negative"}
	}
	if !req.Category.Valid() {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "unknown category " + string(req.Category)}
	}

	item := domain.MenuItem{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	if err := s.menuRepo.InsertMenuItem(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}

	s.mu.Lock()
	s.menu = append(s.menu, item)
	s.mu.Unlock()
	s.writeThroughMenu(ctx)
	s.lg.Info("menu_item_created", map[string]any{"menu_item_id": item.ID, "name": item.Name})
	return item, nil
}

// UpdateMenuItem replaces the item's fields and its full ingredient list.
// Ingredient display names are resolved from the inventory snapshot.
func (s *Store) UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItem, error) {
	if _, ok := s.MenuItem(id); !ok {
		return domain.MenuItem{}, domain.ErrUnknownMenuItem
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "name and description are required"}
	}
	if req.Price < 0 {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "price cannot be negative"}
	}
	if !req.Category.Valid() {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "unknown category " + string(req.Category)}
	}
	if len(req.Ingredients) == 0 {
		return domain.MenuItem{}, &domain.ValidationError{Reason: "at least one ingredient is required"}
	}

	ingredients := make([]domain.IngredientRequirement, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Quantity <= 0 {
			return domain.MenuItem{}, &domain.ValidationError{Reason: "ingredient quantity must be positive"}
		}
		inv, ok := s.InventoryItem(ing.InventoryItemID)
		if !ok {
			return domain.MenuItem{}, &domain.ValidationError{Reason: "unknown ingredient " + ing.InventoryItemID}
		}
		ingredients = append(ingredients, domain.IngredientRequirement{
			InventoryItemID: ing.InventoryItemID,
			Name:            inv.Name,
			Quantity:        ing.Quantity,
		})
	}

	item := domain.MenuItem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Ingredients: ingredients,
	}
	if err := s.menuRepo.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}

	s.mu.Lock()
	for i := range s.menu {
		if s.menu[i].ID == id {
			s.menu[i] = item
			break
		}
	}
	s.mu.Unlock()
	s.writeThroughMenu(ctx)
	s.lg.Info("menu_item_updated", map[string]any{"menu_item_id": id, "ingredients": len(ingredients)})
	return item, nil
}

// CreateInventoryItem inserts a new stocked ingredient.
func (s *Store) CreateInventoryItem(ctx context.Context, req domain.CreateInventoryItemRequest) (domain.InventoryItem, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Unit) == "" || strings.TrimSpace(req.Category) == "" {
		return domain.InventoryItem{}, &domain.ValidationError{Reason: "name, unit and category are required"}
	}
	if req.Quantity < 0 {
		return domain.InventoryItem{}, &domain.NegativeQuantityError{Quantity: req.Quantity}
	}
	if req.MinLevel < 0 {
		return domain.InventoryItem{}, &domain.ValidationError{Reason: "minimum level cannot be negative"}
	}

	item := domain.InventoryItem{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinLevel: req.MinLevel,
		Category: req.Category,
	}
	if err := s.invRepo.InsertInventoryItem(ctx, item); err != nil {
		return domain.InventoryItem{}, err
	}

	s.mu.Lock()
	s.inventory[item.ID] = item
	s.invOrder = append(s.invOrder, item.ID)
	s.mu.Unlock()
	s.writeThroughInventory(ctx)
	s.lg.Info("inventory_item_created", map[string]any{"item_id": item.ID, "name": item.Name})
	return item, nil
}

// AddWastage bumps the informational wastage counter; quantity is untouched.
func (s *Store) AddWastage(ctx context.Context, id string, amount float64) bool {
	s.mu.Lock()
	it, ok := s.inventory[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	it.Wastage += amount
	s.inventory[id] = it
	s.mu.Unlock()
	s.writeThroughInventory(ctx)
	return true
}

func (s *Store) writeThrough(ctx context.Context) {
	s.writeThroughMenu(ctx)
	s.writeThroughInventory(ctx)
}

func (s *Store) writeThroughMenu(ctx context.Context) {
	b, err := json.Marshal(s.MenuItems())
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cache.KeyMenu, b); err != nil {
		s.lg.Debug("cache_write_skipped", map[string]any{"key": cache.KeyMenu, "reason": err.Error()})
	}
}

func (s *Store) writeThroughInventory(ctx context.Context) {
	b, err := json.Marshal(s.InventoryItems())
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cache.KeyInventory, b); err != nil {
		s.lg.Debug("cache_write_skipped", map[string]any{"key": cache.KeyInventory, "reason": err.Error()})
	}
}
