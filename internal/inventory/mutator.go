// Package inventory applies manual stock adjustments (restock, correction,
// wastage) independent of the order flow, with the same local-wins policy as
// order persistence.
package inventory

import (
	"context"
	"sync"
	"time"

	"chickey-pos/internal/catalog"
	"chickey-pos/internal/domain"
	"chickey-pos/internal/logger"
	"chickey-pos/internal/repository"
	"chickey-pos/internal/warnings"
)

type Mutator struct {
	catalog *catalog.Store
	repo    repository.InventoryRepository
	sink    *warnings.Sink
	lg      *logger.Logger
	wg      sync.WaitGroup
}

func NewMutator(cat *catalog.Store, repo repository.InventoryRepository, sink *warnings.Sink, lg *logger.Logger) *Mutator {
	return &Mutator{catalog: cat, repo: repo, sink: sink, lg: lg}
}

// SetQuantity replaces an item's stock level. Negative input is rejected
// before any mutation; otherwise the local snapshot is updated synchronously
// and the remote update runs in the background, reporting failure as a
// warning while the local value is kept.
func (m *Mutator) SetQuantity(ctx context.Context, id string, quantity float64) error {
	if quantity < 0 {
		return &domain.NegativeQuantityError{Quantity: quantity}
	}
	if !m.catalog.SetQuantity(ctx, id, quantity) {
		return domain.ErrUnknownInventoryItem
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.repo.UpdateQuantity(context.Background(), id, quantity); err != nil {
			m.warn(domain.StageInventoryEdit, id, err)
		}
	}()

	m.lg.Info("inventory_updated", map[string]any{"item_id": id, "quantity": quantity})
	return nil
}

// RecordWastage adds to an item's wastage counter. Purely informational: it
// never touches the quantity and the stock checker never reads it.
func (m *Mutator) RecordWastage(ctx context.Context, id string, amount float64) error {
	if amount < 0 {
		return &domain.NegativeQuantityError{Quantity: amount}
	}
	if !m.catalog.AddWastage(ctx, id, amount) {
		return domain.ErrUnknownInventoryItem
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.repo.AddWastage(context.Background(), id, amount); err != nil {
			m.warn(domain.StageWastage, id, err)
		}
	}()

	m.lg.Info("wastage_recorded", map[string]any{"item_id": id, "amount": amount})
	return nil
}

func (m *Mutator) warn(stage, itemID string, err error) {
	m.sink.Report(domain.PersistenceWarning{
		Stage:  stage,
		ItemID: itemID,
		Cause:  err.Error(),
		At:     time.Now().UTC(),
	})
	m.lg.Error("inventory_persist_failed", err, map[string]any{"stage": stage, "item_id": itemID})
}

// Wait blocks until in-flight remote updates have finished.
func (m *Mutator) Wait() { m.wg.Wait() }
