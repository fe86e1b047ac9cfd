package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickey-pos/internal/cache"
	"chickey-pos/internal/cart"
	"chickey-pos/internal/catalog"
	"chickey-pos/internal/domain"
	"chickey-pos/internal/inventory"
	"chickey-pos/internal/logger"
	"chickey-pos/internal/order"
	"chickey-pos/internal/warnings"
)

type fakeMenuRepo struct {
	items []domain.MenuItem
}

func (f *fakeMenuRepo) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return f.items, nil
}

func (f *fakeMenuRepo) InsertMenuItem(ctx context.Context, m domain.MenuItem) error {
	f.items = append(f.items, m)
	return nil
}

func (f *fakeMenuRepo) UpdateMenuItem(ctx context.Context, m domain.MenuItem) error {
	for i := range f.items {
		if f.items[i].ID == m.ID {
			f.items[i] = m
			break
		}
	}
	return nil
}

type fakeInventoryRepo struct {
	items []domain.InventoryItem
}

func (f *fakeInventoryRepo) ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return f.items, nil
}

func (f *fakeInventoryRepo) InsertInventoryItem(ctx context.Context, it domain.InventoryItem) error {
	f.items = append(f.items, it)
	return nil
}

func (f *fakeInventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	return nil
}

func (f *fakeInventoryRepo) DecrementQuantity(ctx context.Context, id string, by float64) error {
	return nil
}

func (f *fakeInventoryRepo) AddWastage(ctx context.Context, id string, amount float64) error {
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (f *fakeOrderRepo) InsertOrder(ctx context.Context, o domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) InsertOrderItems(ctx context.Context, orderID string, lines []domain.OrderLine) error {
	return nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders, nil
}

func (f *fakeOrderRepo) OrdersBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if !o.Timestamp.Before(from) && o.Timestamp.Before(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

type rig struct {
	handler   http.Handler
	catalog   *catalog.Store
	processor *order.Processor
	mutator   *inventory.Mutator
	sink      *warnings.Sink
}

func newRig(t *testing.T) *rig {
	t.Helper()
	menuRepo := &fakeMenuRepo{items: []domain.MenuItem{
		{
			ID: "burger-classic", Name: "Classic Chicken Burger", Price: 199.99, Category: domain.CategoryMain,
			Ingredients: []domain.IngredientRequirement{
				{InventoryItemID: "chicken-patty", Name: "Chicken Patty", Quantity: 1},
			},
		},
	}}
	invRepo := &fakeInventoryRepo{items: []domain.InventoryItem{
		{ID: "chicken-patty", Name: "Chicken Patty", Quantity: 50, Unit: "pieces", MinLevel: 10},
	}}
	ordRepo := &fakeOrderRepo{}

	lg := logger.New("test")
	mem := cache.NewMemory()
	cat := catalog.NewStore(menuRepo, invRepo, mem, lg)
	require.NoError(t, cat.Load(context.Background()))

	c := cart.New()
	sink := warnings.NewSink()
	proc := order.NewProcessor(c, cat, ordRepo, invRepo, mem, sink, nil, lg)
	mut := inventory.NewMutator(cat, invRepo, sink, lg)

	return &rig{
		handler:   New(cat, c, proc, mut, sink, lg).Router(),
		catalog:   cat,
		processor: proc,
		mutator:   mut,
		sink:      sink,
	}
}

func (r *rig) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestAddToCartThenCommit(t *testing.T) {
	r := newRig(t)

	rec := r.do(t, http.MethodPost, "/cart/items", domain.AddCartItemRequest{MenuItemID: "burger-classic"})
	require.Equal(t, http.StatusOK, rec.Code)
	cartResp := decode[domain.CartResponse](t, rec)
	require.Len(t, cartResp.Entries, 1)
	assert.InDelta(t, 199.99, cartResp.Total, 0.001)
	assert.True(t, cartResp.Stock.Sufficient)

	rec = r.do(t, http.MethodPost, "/orders", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	o := decode[domain.Order](t, rec)
	assert.NotEmpty(t, o.ID)
	assert.InDelta(t, 199.99, o.Total, 0.001)
	r.processor.Wait()

	item, _ := r.catalog.InventoryItem("chicken-patty")
	assert.InDelta(t, 49, item.Quantity, 0.001)

	stats := decode[domain.Stats](t, r.do(t, http.MethodGet, "/stats", nil))
	assert.Equal(t, 1, stats.TotalOrders)
	assert.InDelta(t, 199.99, stats.TotalRevenue, 0.001)

	// The cart is cleared by a successful commit.
	cartResp = decode[domain.CartResponse](t, r.do(t, http.MethodGet, "/cart", nil))
	assert.Empty(t, cartResp.Entries)
}

func TestAddUnknownMenuItem(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPost, "/cart/items", domain.AddCartItemRequest{MenuItemID: "unobtainium"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommitEmptyCart(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPost, "/orders", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCommitInsufficientStockNamesShortItems(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.mutator.SetQuantity(context.Background(), "chicken-patty", 0))
	r.mutator.Wait()

	require.Equal(t, http.StatusOK, r.do(t, http.MethodPost, "/cart/items", domain.AddCartItemRequest{MenuItemID: "burger-classic"}).Code)

	rec := r.do(t, http.MethodPost, "/orders", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[domain.ErrorResponse](t, rec)
	assert.Equal(t, []string{"Chicken Patty"}, resp.ShortItems)

	// The cart stays intact so the cashier can adjust it.
	cartResp := decode[domain.CartResponse](t, r.do(t, http.MethodGet, "/cart", nil))
	assert.Len(t, cartResp.Entries, 1)
}

func TestPutInventoryRejectsNegativeQuantity(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPut, "/inventory/chicken-patty", domain.SetInventoryQuantityRequest{Quantity: -5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	item, _ := r.catalog.InventoryItem("chicken-patty")
	assert.InDelta(t, 50, item.Quantity, 0.001)
}

func TestPutInventoryUnknownItem(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPut, "/inventory/unobtainium", domain.SetInventoryQuantityRequest{Quantity: 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderReportRejectsBadDate(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodGet, "/orders/report?date=31-08-2026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderReportReturnsDaysOrders(t *testing.T) {
	r := newRig(t)
	require.Equal(t, http.StatusOK, r.do(t, http.MethodPost, "/cart/items", domain.AddCartItemRequest{MenuItemID: "burger-classic"}).Code)
	require.Equal(t, http.StatusCreated, r.do(t, http.MethodPost, "/orders", nil).Code)
	r.processor.Wait()

	today := time.Now().UTC().Format("2006-01-02")
	rec := r.do(t, http.MethodGet, "/orders/report?date="+today, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[domain.OrderReportResponse](t, rec)
	assert.Equal(t, today, report.Date)
	assert.Equal(t, "remote", report.Source)
	assert.Len(t, report.Orders, 1)
}

func TestWarningsReadThenAck(t *testing.T) {
	r := newRig(t)
	r.sink.Report(domain.PersistenceWarning{Stage: domain.StageOrder, OrderID: "o-1", Cause: "connection refused", At: time.Now()})

	// Reading is not destructive; a repeated poll sees the same warnings.
	ws := decode[[]domain.PersistenceWarning](t, r.do(t, http.MethodGet, "/warnings", nil))
	require.Len(t, ws, 1)
	ws = decode[[]domain.PersistenceWarning](t, r.do(t, http.MethodGet, "/warnings", nil))
	require.Len(t, ws, 1)
	assert.Equal(t, domain.StageOrder, ws[0].Stage)

	// Acknowledging drains.
	acked := decode[[]domain.PersistenceWarning](t, r.do(t, http.MethodPost, "/warnings/ack", nil))
	require.Len(t, acked, 1)
	assert.Empty(t, decode[[]domain.PersistenceWarning](t, r.do(t, http.MethodGet, "/warnings", nil)))
}

func TestCreateMenuItem(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPost, "/menu", domain.CreateMenuItemRequest{
		Name: "Chicken Wrap", Description: "Grilled chicken in a tortilla",
		Price: 159.99, Category: domain.CategoryMain,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decode[domain.MenuItem](t, rec)
	assert.NotEmpty(t, item.ID)

	menu := decode[[]domain.MenuItem](t, r.do(t, http.MethodGet, "/menu", nil))
	assert.Len(t, menu, 2)
}

func TestCreateMenuItemRejectsBlankName(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPost, "/menu", domain.CreateMenuItemRequest{
		Description: "d", Price: 10, Category: domain.CategoryMain,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateMenuItem(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPut, "/menu/burger-classic", domain.UpdateMenuItemRequest{
		Name: "Classic Chicken Burger", Description: "Juicy chicken patty",
		Price: 219.99, Category: domain.CategoryMain,
		Ingredients: []domain.IngredientRequirement{{InventoryItemID: "chicken-patty", Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	item := decode[domain.MenuItem](t, rec)
	assert.InDelta(t, 219.99, item.Price, 0.001)
	require.Len(t, item.Ingredients, 1)
	assert.Equal(t, "Chicken Patty", item.Ingredients[0].Name)
}

func TestUpdateMenuItemUnknownID(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPut, "/menu/unobtainium", domain.UpdateMenuItemRequest{
		Name: "n", Description: "d", Price: 10, Category: domain.CategoryMain,
		Ingredients: []domain.IngredientRequirement{{InventoryItemID: "chicken-patty", Quantity: 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateInventoryItem(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPost, "/inventory", domain.CreateInventoryItemRequest{
		Name: "Tortilla", Quantity: 30, Unit: "pieces", MinLevel: 10, Category: "bread",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decode[domain.InventoryItem](t, rec)
	assert.NotEmpty(t, item.ID)

	snapshot := decode[[]domain.InventoryItem](t, r.do(t, http.MethodGet, "/inventory", nil))
	assert.Len(t, snapshot, 2)
}

func TestCreateInventoryItemRejectsNegativeQuantity(t *testing.T) {
	r := newRig(t)
	rec := r.do(t, http.MethodPost, "/inventory", domain.CreateInventoryItemRequest{
		Name: "Tortilla", Quantity: -5, Unit: "pieces", Category: "bread",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRemoveCartItem(t *testing.T) {
	r := newRig(t)
	require.Equal(t, http.StatusOK, r.do(t, http.MethodPost, "/cart/items", domain.AddCartItemRequest{MenuItemID: "burger-classic"}).Code)

	rec := r.do(t, http.MethodDelete, "/cart/items/burger-classic", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cartResp := decode[domain.CartResponse](t, r.do(t, http.MethodGet, "/cart", nil))
	assert.Empty(t, cartResp.Entries)
}
