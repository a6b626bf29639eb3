package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
	"github.com/nashon/pos-ledger-api/pkg/apperror"
)

// memSnapshots implements repository.SnapshotRepository in memory.
type memSnapshots struct {
	data  map[string][]byte
	saves int
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: map[string][]byte{}}
}

func (m *memSnapshots) Load(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memSnapshots) Save(_ context.Context, key string, data []byte) error {
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func newLoadedOrderStore(t *testing.T) (*OrderStore, *memSnapshots) {
	t.Helper()
	snaps := newMemSnapshots()
	s := NewOrderStore(snaps)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, snaps
}

func TestOrderAddDerivesTotalsAndPersists(t *testing.T) {
	s, snaps := newLoadedOrderStore(t)
	ctx := context.Background()

	order, err := s.Add(ctx, CreateOrderInput{
		Items: []entity.LineItem{{ID: "p1", Name: "Coffee", Price: 10.00, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if order.Subtotal != 30.00 || order.Tax != 2.40 || order.Total != 33 {
		t.Errorf("totals = %v/%v/%v, want 30.00/2.40/33", order.Subtotal, order.Tax, order.Total)
	}
	if order.Status != enum.OrderStatusPaid {
		t.Errorf("status defaulted to %q, want paid", order.Status)
	}
	if order.ID == "" || order.Timestamp.IsZero() {
		t.Errorf("identity not assigned: %+v", order)
	}
	if snaps.saves != 1 {
		t.Errorf("saves = %d, want 1", snaps.saves)
	}

	var persisted []entity.Order
	if err := json.Unmarshal(snaps.data["orders"], &persisted); err != nil {
		t.Fatalf("persisted snapshot unreadable: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != order.ID {
		t.Errorf("persisted = %+v", persisted)
	}
}

func TestOrderAddPrependsNewestFirst(t *testing.T) {
	s, _ := newLoadedOrderStore(t)
	ctx := context.Background()

	first, _ := s.Add(ctx, CreateOrderInput{})
	second, _ := s.Add(ctx, CreateOrderInput{})

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("List has %d orders, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("order of collection wrong: %s, %s", list[0].ID, list[1].ID)
	}
	if first.ID == second.ID {
		t.Errorf("ids must never repeat: %s", first.ID)
	}
}

func TestOrderUpdateUnknownIDIsNotFound(t *testing.T) {
	s, snaps := newLoadedOrderStore(t)

	_, err := s.Update(context.Background(), "missing", OrderPatch{})
	if err == nil {
		t.Fatal("Update succeeded for unknown id")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Errorf("error code = %d, want 404", apperror.GetAppError(err).Code)
	}
	if snaps.saves != 0 {
		t.Errorf("nothing should persist on not-found, saves = %d", snaps.saves)
	}
}

func TestOrderAddItemMergesDuplicates(t *testing.T) {
	s, _ := newLoadedOrderStore(t)
	ctx := context.Background()

	order, _ := s.Add(ctx, CreateOrderInput{})
	if _, err := s.AddItem(ctx, order.ID, entity.LineItem{ID: "X", Price: 5, Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	updated, err := s.AddItem(ctx, order.ID, entity.LineItem{ID: "X", Price: 5, Quantity: 3})
	if err != nil {
		t.Fatalf("AddItem again: %v", err)
	}

	if len(updated.Items) != 1 {
		t.Fatalf("items = %+v, want exactly one line", updated.Items)
	}
	if updated.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", updated.Items[0].Quantity)
	}
	if updated.Subtotal != 25.00 {
		t.Errorf("subtotal = %v, want 25.00", updated.Subtotal)
	}
}

func TestOrderSetItemQuantityBoundary(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		s, _ := newLoadedOrderStore(t)
		ctx := context.Background()

		order, _ := s.Add(ctx, CreateOrderInput{
			Items: []entity.LineItem{{ID: "X", Price: 2, Quantity: 4}},
		})
		updated, err := s.SetItemQuantity(ctx, order.ID, "X", quantity)
		if err != nil {
			t.Fatalf("SetItemQuantity(%d): %v", quantity, err)
		}
		if entity.FindItem(updated.Items, "X") != -1 {
			t.Errorf("quantity %d should remove the item, items = %+v", quantity, updated.Items)
		}
		if updated.Subtotal != 0 || updated.Total != 0 {
			t.Errorf("totals not recomputed after removal: %+v", updated)
		}
	}
}

func TestOrderRemoveItemRecalculates(t *testing.T) {
	s, _ := newLoadedOrderStore(t)
	ctx := context.Background()

	order, _ := s.Add(ctx, CreateOrderInput{
		Items: []entity.LineItem{
			{ID: "a", Price: 10, Quantity: 1},
			{ID: "b", Price: 5, Quantity: 2},
		},
	})
	updated, err := s.RemoveItem(ctx, order.ID, "b")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].ID != "a" {
		t.Errorf("items = %+v", updated.Items)
	}
	if updated.Subtotal != 10.00 || updated.Tax != 0.80 || updated.Total != 11 {
		t.Errorf("totals = %v/%v/%v, want 10.00/0.80/11", updated.Subtotal, updated.Tax, updated.Total)
	}
}

func TestOrderLoadMigratesLegacyStatus(t *testing.T) {
	snaps := newMemSnapshots()
	legacy := `[
		{"id":"100","timestamp":"2025-01-01T00:00:00Z","items":[],"subtotal":0,"tax":0,"total":0},
		{"id":"101","timestamp":"2025-01-02T00:00:00Z","items":[],"subtotal":0,"tax":0,"total":0,"status":"pending"}
	]`
	snaps.data["orders"] = []byte(legacy)

	s := NewOrderStore(snaps)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	list := s.List()
	if list[0].Status != enum.OrderStatusPaid {
		t.Errorf("legacy order status = %q, want paid", list[0].Status)
	}
	if list[1].Status != enum.OrderStatusPending {
		t.Errorf("explicit status clobbered: %q", list[1].Status)
	}
	// The corrected collection is written back once.
	if snaps.saves != 1 {
		t.Errorf("saves = %d, want 1 write-back", snaps.saves)
	}

	// A second load sees the migrated snapshot and does not write again.
	s2 := NewOrderStore(snaps)
	if err := s2.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if snaps.saves != 1 {
		t.Errorf("migration ran twice, saves = %d", snaps.saves)
	}
}

func TestOrderLoadToleratesCorruptSnapshot(t *testing.T) {
	snaps := newMemSnapshots()
	snaps.data["orders"] = []byte(`{not json`)

	s := NewOrderStore(snaps)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load should not fail on corrupt data: %v", err)
	}
	if len(s.List()) != 0 {
		t.Errorf("corrupt snapshot should yield empty collection")
	}
}

type failingSnapshots struct{ memSnapshots }

func (f *failingSnapshots) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestOrderAddLeavesCollectionUntouchedOnPersistFailure(t *testing.T) {
	snaps := &failingSnapshots{memSnapshots{data: map[string][]byte{}}}
	s := NewOrderStore(snaps)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := s.Add(context.Background(), CreateOrderInput{}); err == nil {
		t.Fatal("Add succeeded despite persist failure")
	}
	if len(s.List()) != 0 {
		t.Errorf("in-memory collection mutated despite persist failure")
	}
}
