package order

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"chickey-pos/internal/cache"
	"chickey-pos/internal/cart"
	"chickey-pos/internal/catalog"
	"chickey-pos/internal/domain"
	"chickey-pos/internal/logger"
	"chickey-pos/internal/notify"
	"chickey-pos/internal/repository"
	"chickey-pos/internal/stock"
	"chickey-pos/internal/warnings"
)

// Processor commits carts into orders. The local side (history, aggregate
// counters, cart clear) is applied synchronously; the remote side runs on a
// background goroutine and can only ever produce a warning, never undo the
// local commit.
//
// There is no concurrency control on the remote inventory decrement: two
// terminals hitting the same row would be last-writer-wins. Single-cashier
// usage is assumed; growing past that needs a version column or a
// conditional update, not a silent fix here.
type Processor struct {
	mu      sync.Mutex
	cart    *cart.Cart
	catalog *catalog.Store
	orders  repository.OrderRepository
	invRepo repository.InventoryRepository
	cache   cache.Store
	sink    *warnings.Sink
	events  *notify.Publisher
	lg      *logger.Logger

	history      []domain.Order
	totalOrders  int
	totalRevenue float64
	wg           sync.WaitGroup
}

func NewProcessor(
	c *cart.Cart,
	cat *catalog.Store,
	orders repository.OrderRepository,
	invRepo repository.InventoryRepository,
	cacheStore cache.Store,
	sink *warnings.Sink,
	events *notify.Publisher,
	lg *logger.Logger,
) *Processor {
	return &Processor{
		cart:    c,
		catalog: cat,
		orders:  orders,
		invRepo: invRepo,
		cache:   cacheStore,
		sink:    sink,
		events:  events,
		lg:      lg,
	}
}

// LoadHistory reads the order history from the backend and recomputes the
// aggregate counters, falling back to the cached snapshot. A non-nil error is
// a *domain.RemoteFetchError; the processor is usable either way.
func (p *Processor) LoadHistory(ctx context.Context) error {
	hist, err := p.orders.ListOrders(ctx)
	if err == nil {
		p.setHistory(hist)
		p.lg.Info("history_loaded", map[string]any{"orders": len(hist)})
		return nil
	}

	if b, cerr := p.cache.Get(ctx, cache.KeyOrders); cerr == nil {
		var cached []domain.Order
		if json.Unmarshal(b, &cached) == nil {
			p.setHistory(cached)
		}
	}
	p.lg.Error("history_load_fallback", err, map[string]any{"orders": len(p.Orders())})
	return &domain.RemoteFetchError{Resource: "orders", Err: err}
}

func (p *Processor) setHistory(hist []domain.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = hist
	p.totalOrders = len(hist)
	p.totalRevenue = 0
	for _, o := range hist {
		p.totalRevenue += o.Total
	}
}

// Commit finalizes the current cart. Validation failures (empty cart,
// insufficient stock) are returned before any state changes. Once validation
// passes, Commit always succeeds from the caller's point of view: the order
// is applied locally, the cart is cleared, and remote persistence proceeds in
// the background, reporting failures to the warning sink only.
func (p *Processor) Commit(ctx context.Context) (domain.Order, error) {
	p.mu.Lock()

	// Checkout holds the cart's lock across snapshot, validation and clear, so
	// an Add racing on another request goroutine is never silently dropped.
	var o domain.Order
	var entries []domain.CartEntry
	err := p.cart.Checkout(func(snapshot []domain.CartEntry) error {
		if len(snapshot) == 0 {
			return domain.ErrEmptyCart
		}

		// Re-validate against live inventory rather than trusting the caller's
		// last check: stock may have moved since.
		verdict := stock.Check(snapshot, p.catalog.InventorySnapshot())
		if !verdict.Sufficient {
			return &domain.InsufficientStockError{ShortItems: verdict.InsufficientItemNames}
		}

		entries = snapshot
		o = domain.Order{
			ID:        uuid.NewString(),
			Timestamp: time.Now().UTC(),
		}
		for _, e := range entries {
			o.Lines = append(o.Lines, domain.OrderLine{
				MenuItemID: e.Item.ID,
				Name:       e.Item.Name,
				Price:      e.Item.Price,
				Quantity:   e.Quantity,
			})
			o.Total += e.Item.Price * float64(e.Quantity)
		}
		return nil
	})
	if err != nil {
		p.mu.Unlock()
		return domain.Order{}, err
	}

	p.history = append(p.history, o)
	p.totalOrders++
	p.totalRevenue += o.Total
	p.saveLocalLocked(ctx)
	p.mu.Unlock()

	p.wg.Add(1)
	go p.persist(o, entries)

	p.lg.Info("order_committed", map[string]any{"order_id": o.ID, "total": o.Total, "lines": len(o.Lines)})
	return o, nil
}

// persist runs the remote leg of a commit: order row, then its items, then
// the clamped inventory decrements, in that sequence. The first failure
// aborts the remaining stages and reports exactly one warning. No deadline,
// no retry: the backend either takes the write or the cashier sees a warning.
func (p *Processor) persist(o domain.Order, entries []domain.CartEntry) {
	defer p.wg.Done()
	ctx := context.Background()

	if err := p.orders.InsertOrder(ctx, o); err != nil {
		p.warn(domain.StageOrder, o.ID, err)
		return
	}
	if err := p.orders.InsertOrderItems(ctx, o.ID, o.Lines); err != nil {
		p.warn(domain.StageOrderItems, o.ID, err)
		return
	}

	demand := stock.Demand(entries)
	ids := make([]string, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := p.invRepo.DecrementQuantity(ctx, id, demand[id]); err != nil {
			p.warn(domain.StageInventory, o.ID, err)
			return
		}
		// Mirror into the local snapshot so the next stock check sees it
		// without a full reload.
		p.catalog.ApplyDecrement(ctx, id, demand[id])
	}

	p.events.OrderPlaced(o)
	p.events.LowStock(p.catalog.LowStock())
	p.lg.Debug("order_persisted", map[string]any{"order_id": o.ID})
}

func (p *Processor) warn(stage, orderID string, err error) {
	p.sink.Report(domain.PersistenceWarning{
		Stage:   stage,
		OrderID: orderID,
		Cause:   err.Error(),
		At:      time.Now().UTC(),
	})
	p.lg.Error("order_persist_failed", err, map[string]any{"stage": stage, "order_id": orderID})
}

func (p *Processor) saveLocalLocked(ctx context.Context) {
	if b, err := json.Marshal(p.history); err == nil {
		if err := p.cache.Set(ctx, cache.KeyOrders, b); err != nil {
			p.lg.Debug("cache_write_skipped", map[string]any{"key": cache.KeyOrders, "reason": err.Error()})
		}
	}
	st := domain.Stats{TotalOrders: p.totalOrders, TotalRevenue: p.totalRevenue}
	if b, err := json.Marshal(st); err == nil {
		if err := p.cache.Set(ctx, cache.KeyStats, b); err != nil {
			p.lg.Debug("cache_write_skipped", map[string]any{"key": cache.KeyStats, "reason": err.Error()})
		}
	}
}

// Wait blocks until all in-flight remote persistence has finished. Called on
// shutdown, and by tests that need to observe warnings deterministically.
func (p *Processor) Wait() { p.wg.Wait() }

func (p *Processor) Orders() []domain.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Order, len(p.history))
	copy(out, p.history)
	return out
}

func (p *Processor) Stats() domain.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.Stats{TotalOrders: p.totalOrders, TotalRevenue: p.totalRevenue}
}

// OrdersByDate returns the orders committed on the given UTC day, preferring
// the backend's joined view and falling back to the local history. A non-nil
// error is a *domain.RemoteFetchError and the returned slice is the local
// fallback.
func (p *Processor) OrdersByDate(ctx context.Context, day time.Time) ([]domain.Order, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	remote, err := p.orders.OrdersBetween(ctx, from, to)
	if err == nil {
		return remote, nil
	}

	var local []domain.Order
	for _, o := range p.Orders() {
		if !o.Timestamp.Before(from) && o.Timestamp.Before(to) {
			local = append(local, o)
		}
	}
	return local, &domain.RemoteFetchError{Resource: "orders", Err: err}
}
