package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
	"github.com/nashon/pos-ledger-api/internal/domain/repository"
	"github.com/nashon/pos-ledger-api/internal/domain/totals"
	"github.com/nashon/pos-ledger-api/pkg/apperror"
)

const orderSnapshotKey = "orders"

// OrderStore holds the authoritative in-session list of orders, newest
// first, and keeps the durable snapshot consistent with every mutation.
// All mutations are serialized behind the store's mutex.
type OrderStore struct {
	mu        sync.Mutex
	snapshots repository.SnapshotRepository
	orders    []entity.Order
}

// NewOrderStore creates an order store over the given snapshot
// repository. Call Load before serving traffic.
func NewOrderStore(snapshots repository.SnapshotRepository) *OrderStore {
	return &OrderStore{snapshots: snapshots}
}

// CreateOrderInput is the caller-supplied part of a new order.
type CreateOrderInput struct {
	Items        []entity.LineItem
	Status       enum.OrderStatus
	PaymentType  string
	CustomerName string
}

// OrderPatch is an explicit partial update. Nil fields are left alone.
// Setting Items recomputes subtotal, tax and total.
type OrderPatch struct {
	Items        *[]entity.LineItem
	Status       *enum.OrderStatus
	PaymentType  *string
	CustomerName *string
}

// Load reads the persisted collection. An unreadable snapshot is logged
// and discarded rather than blocking startup: the worst case is an empty
// collection. Legacy records written before the status field existed are
// migrated to paid and the corrected snapshot is written back.
func (s *OrderStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.snapshots.Load(ctx, orderSnapshotKey)
	if err != nil {
		log.Printf("order store: snapshot unavailable, starting empty: %v", err)
		s.orders = nil
		return nil
	}
	if data == nil {
		s.orders = nil
		return nil
	}

	var orders []entity.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Printf("order store: discarding unreadable snapshot: %v", err)
		s.orders = nil
		return nil
	}
	s.orders = orders

	if migrateLegacyOrders(s.orders) {
		if err := s.persist(ctx, s.orders); err != nil {
			return fmt.Errorf("failed to write back migrated orders: %w", err)
		}
	}
	return nil
}

// migrateLegacyOrders backfills the status field on records that predate
// it. Kept separate from deserialization so future schema steps compose.
func migrateLegacyOrders(orders []entity.Order) bool {
	changed := false
	for i := range orders {
		if orders[i].Status == "" {
			orders[i].Status = enum.OrderStatusPaid
			changed = true
		}
	}
	return changed
}

// List returns a copy of the collection, newest first.
func (s *OrderStore) List() []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Get returns the order with the given id.
func (s *OrderStore) Get(id string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.find(id); i >= 0 {
		o := s.orders[i]
		return &o, nil
	}
	return nil, apperror.NewNotFoundError("Order")
}

// Add constructs a new order from caller data, derives its totals,
// prepends it to the collection and persists before returning.
func (s *OrderStore) Add(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := input.Status
	if status == "" {
		status = enum.OrderStatusPaid
	}
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	t := totals.ForOrder(input.Items)
	order := entity.Order{
		ID:           NewDocumentID(),
		Timestamp:    time.Now().UTC(),
		Items:        append([]entity.LineItem(nil), input.Items...),
		Subtotal:     t.Subtotal,
		Tax:          t.Tax,
		Total:        t.Total,
		Status:       status,
		PaymentType:  input.PaymentType,
		CustomerName: input.CustomerName,
	}

	next := make([]entity.Order, 0, len(s.orders)+1)
	next = append(next, order)
	next = append(next, s.orders...)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.orders = next
	return &order, nil
}

// Update applies a patch to the order with the given id. Unknown ids are
// an explicit not-found error, not a silent no-op.
func (s *OrderStore) Update(ctx context.Context, id string, patch OrderPatch) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, id, patch)
}

func (s *OrderStore) updateLocked(ctx context.Context, id string, patch OrderPatch) (*entity.Order, error) {
	idx := s.find(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Order")
	}

	next := make([]entity.Order, len(s.orders))
	copy(next, s.orders)
	order := &next[idx]

	if patch.Items != nil {
		order.Items = append([]entity.LineItem(nil), (*patch.Items)...)
		t := totals.ForOrder(order.Items)
		order.Subtotal, order.Tax, order.Total = t.Subtotal, t.Tax, t.Total
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperror.NewBadRequestError("Invalid order status")
		}
		order.Status = *patch.Status
	}
	if patch.PaymentType != nil {
		order.PaymentType = *patch.PaymentType
	}
	if patch.CustomerName != nil {
		order.CustomerName = *patch.CustomerName
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.orders = next
	out := *order
	return &out, nil
}

// AddItem merges an item into the order: an existing line with the same
// product id has its quantity incremented, otherwise the item is
// appended.
func (s *OrderStore) AddItem(ctx context.Context, orderID string, item entity.LineItem) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(orderID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Order")
	}
	items := entity.MergeItem(s.orders[idx].Items, item)
	return s.updateLocked(ctx, orderID, OrderPatch{Items: &items})
}

// RemoveItem drops the line with the given product id.
func (s *OrderStore) RemoveItem(ctx context.Context, orderID, itemID string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeItemLocked(ctx, orderID, itemID)
}

func (s *OrderStore) removeItemLocked(ctx context.Context, orderID, itemID string) (*entity.Order, error) {
	idx := s.find(orderID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Order")
	}
	items := entity.RemoveItem(s.orders[idx].Items, itemID)
	return s.updateLocked(ctx, orderID, OrderPatch{Items: &items})
}

// SetItemQuantity sets a line's quantity. A quantity of zero or less
// removes the line, identical to RemoveItem.
func (s *OrderStore) SetItemQuantity(ctx context.Context, orderID, itemID string, quantity int) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeItemLocked(ctx, orderID, itemID)
	}

	idx := s.find(orderID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Order")
	}
	items := append([]entity.LineItem(nil), s.orders[idx].Items...)
	if i := entity.FindItem(items, itemID); i >= 0 {
		items[i].Quantity = quantity
	}
	return s.updateLocked(ctx, orderID, OrderPatch{Items: &items})
}

func (s *OrderStore) find(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *OrderStore) persist(ctx context.Context, orders []entity.Order) error {
	if orders == nil {
		orders = []entity.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to serialize orders: %w", err)
	}
	return s.snapshots.Save(ctx, orderSnapshotKey, data)
}
