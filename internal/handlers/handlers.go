package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chickey-pos/internal/cart"
	"chickey-pos/internal/catalog"
	"chickey-pos/internal/domain"
	"chickey-pos/internal/inventory"
	"chickey-pos/internal/logger"
	"chickey-pos/internal/order"
	"chickey-pos/internal/stock"
	"chickey-pos/internal/warnings"
)

type Handler struct {
	catalog   *catalog.Store
	cart      *cart.Cart
	processor *order.Processor
	inventory *inventory.Mutator
	sink      *warnings.Sink
	lg        *logger.Logger
}

func New(
	cat *catalog.Store,
	c *cart.Cart,
	proc *order.Processor,
	mut *inventory.Mutator,
	sink *warnings.Sink,
	lg *logger.Logger,
) *Handler {
	return &Handler{catalog: cat, cart: c, processor: proc, inventory: mut, sink: sink, lg: lg}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/menu", h.GetMenu)
	r.Post("/menu", h.CreateMenuItem)
	r.Put("/menu/{id}", h.UpdateMenuItem)

	r.Get("/inventory", h.GetInventory)
	r.Post("/inventory", h.CreateInventoryItem)
	r.Get("/inventory/low-stock", h.GetLowStock)
	r.Put("/inventory/{id}", h.PutInventoryQuantity)
	r.Post("/inventory/{id}/wastage", h.PostWastage)

	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddCartItem)
	r.Put("/cart/items/{id}", h.SetCartQuantity)
	r.Delete("/cart/items/{id}", h.RemoveCartItem)

	r.Post("/orders", h.CommitOrder)
	r.Get("/orders", h.GetOrders)
	r.Get("/orders/report", h.GetOrderReport)

	r.Get("/stats", h.GetStats)
	r.Get("/warnings", h.GetWarnings)
	r.Post("/warnings/ack", h.AckWarnings)
	r.Post("/catalog/refresh", h.PostRefresh)

	return r
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.MenuItems())
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	item, err := h.catalog.CreateMenuItem(r.Context(), req)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	item, err := h.catalog.UpdateMenuItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	item, err := h.catalog.CreateInventoryItem(r.Context(), req)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	var negative *domain.NegativeQuantityError
	switch {
	case errors.As(err, &validation), errors.As(err, &negative):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, domain.ErrUnknownMenuItem):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		// The backend write failed; nothing was changed locally.
		writeError(w, http.StatusBadGateway, err.Error(), nil)
	}
}

func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.InventoryItems())
}

func (h *Handler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.LowStock())
}

func (h *Handler) PutInventoryQuantity(w http.ResponseWriter, r *http.Request) {
	var req domain.SetInventoryQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.inventory.SetQuantity(r.Context(), id, req.Quantity); err != nil {
		h.writeInventoryError(w, err)
		return
	}
	item, _ := h.catalog.InventoryItem(id)
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) PostWastage(w http.ResponseWriter, r *http.Request) {
	var req domain.RecordWastageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.inventory.RecordWastage(r.Context(), id, req.Amount); err != nil {
		h.writeInventoryError(w, err)
		return
	}
	item, _ := h.catalog.InventoryItem(id)
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) writeInventoryError(w http.ResponseWriter, err error) {
	var negative *domain.NegativeQuantityError
	switch {
	case errors.As(err, &negative):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, domain.ErrUnknownInventoryItem):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	item, ok := h.catalog.MenuItem(req.MenuItemID)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrUnknownMenuItem.Error(), nil)
		return
	}
	h.cart.Add(item)
	writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req domain.SetCartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	h.cart.SetQuantity(chi.URLParam(r, "id"), req.Quantity)
	writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cartResponse() domain.CartResponse {
	entries := h.cart.Entries()
	return domain.CartResponse{
		Entries: entries,
		Total:   h.cart.Total(),
		Stock:   stock.Check(entries, h.catalog.InventorySnapshot()),
	}
}

func (h *Handler) CommitOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.processor.Commit(r.Context())
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		case errors.As(err, &insufficient):
			writeError(w, http.StatusUnprocessableEntity, err.Error(), insufficient.ShortItems)
		default:
			writeError(w, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.processor.Orders())
}

func (h *Handler) GetOrderReport(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}
	orders, err := h.processor.OrdersByDate(r.Context(), day)
	source := "remote"
	if err != nil {
		source = "local"
	}
	writeJSON(w, http.StatusOK, domain.OrderReportResponse{
		Date:   day.Format("2006-01-02"),
		Orders: orders,
		Source: source,
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.processor.Stats())
}

// GetWarnings is a plain read; polling never loses warnings. AckWarnings is
// the explicit drain once the cashier has seen them.
func (h *Handler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sink.List())
}

func (h *Handler) AckWarnings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sink.Drain())
}

func (h *Handler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	loadErr := h.catalog.Refresh(r.Context())
	if err := h.processor.LoadHistory(r.Context()); err != nil && loadErr == nil {
		loadErr = err
	}
	resp := domain.RefreshResponse{Source: h.catalog.Source()}
	status := http.StatusOK
	if loadErr != nil {
		resp.Error = loadErr.Error()
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, shortItems []string) {
	writeJSON(w, status, domain.ErrorResponse{Error: msg, ShortItems: shortItems})
}
