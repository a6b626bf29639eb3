package store

import (
	"context"
	"testing"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
)

func newLoadedInvoiceStore(t *testing.T) (*InvoiceStore, *memSnapshots) {
	t.Helper()
	snaps := newMemSnapshots()
	s := NewInvoiceStore(snaps)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, snaps
}

func TestInvoiceAddUsesCentRounding(t *testing.T) {
	s, _ := newLoadedInvoiceStore(t)

	invoice, err := s.Add(context.Background(), CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "p1", Price: 10.00, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Same items as an order would total 33; invoices keep the cents.
	if invoice.Subtotal != 30.00 || invoice.Tax != 2.40 || invoice.Total != 32.40 {
		t.Errorf("totals = %v/%v/%v, want 30.00/2.40/32.40", invoice.Subtotal, invoice.Tax, invoice.Total)
	}
	if invoice.Status != enum.InvoiceStatusPending {
		t.Errorf("status = %q, want pending", invoice.Status)
	}
	if invoice.AmountPaid != 0 || len(invoice.Payments) != 0 {
		t.Errorf("ledger not initialized empty: %+v", invoice)
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	s, _ := newLoadedInvoiceStore(t)
	ctx := context.Background()

	invoice, _ := s.Add(ctx, CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "p1", Price: 50.00, Quantity: 2}}, // total 108.00
	})

	partial, err := s.AddPayment(ctx, invoice.ID, PaymentInput{Amount: 40, Method: "cash"})
	if err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if partial.Status != enum.InvoiceStatusPartial {
		t.Errorf("status after partial payment = %q, want partial", partial.Status)
	}
	if partial.AmountPaid != 40.00 {
		t.Errorf("amountPaid = %v, want 40.00", partial.AmountPaid)
	}

	paid, err := s.AddPayment(ctx, invoice.ID, PaymentInput{Amount: 68, Method: "card"})
	if err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if paid.Status != enum.InvoiceStatusPaid {
		t.Errorf("status after full payment = %q, want paid", paid.Status)
	}
	if paid.AmountPaid != 108.00 {
		t.Errorf("amountPaid = %v, want 108.00", paid.AmountPaid)
	}
	if len(paid.Payments) != 2 {
		t.Errorf("ledger has %d payments, want 2", len(paid.Payments))
	}
	// Overpaying keeps the invoice paid.
	over, err := s.AddPayment(ctx, invoice.ID, PaymentInput{Amount: 1})
	if err != nil {
		t.Fatalf("AddPayment overpay: %v", err)
	}
	if over.Status != enum.InvoiceStatusPaid {
		t.Errorf("status after overpay = %q, want paid", over.Status)
	}
}

func TestInvoicePaymentsAreAppendOnly(t *testing.T) {
	s, _ := newLoadedInvoiceStore(t)
	ctx := context.Background()

	invoice, _ := s.Add(ctx, CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "p1", Price: 10, Quantity: 1}},
	})
	first, _ := s.AddPayment(ctx, invoice.ID, PaymentInput{Amount: 2, Description: "deposit"})
	second, _ := s.AddPayment(ctx, invoice.ID, PaymentInput{Amount: 3})

	if len(second.Payments) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(second.Payments))
	}
	if second.Payments[0].ID != first.Payments[0].ID || second.Payments[0].Description != "deposit" {
		t.Errorf("earlier ledger entry changed: %+v", second.Payments[0])
	}
	if second.Payments[0].ID == second.Payments[1].ID {
		t.Errorf("payment ids must be unique")
	}
}

func TestInvoiceUpdateAmountPaidRederivesStatus(t *testing.T) {
	s, _ := newLoadedInvoiceStore(t)
	ctx := context.Background()

	invoice, _ := s.Add(ctx, CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "p1", Price: 100, Quantity: 1}}, // total 108.00
	})

	zero := 0.0
	back, err := s.Update(ctx, invoice.ID, InvoicePatch{AmountPaid: &zero})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if back.Status != enum.InvoiceStatusPending {
		t.Errorf("amountPaid 0 should be pending, got %q", back.Status)
	}

	full := 108.0
	settled, err := s.Update(ctx, invoice.ID, InvoicePatch{AmountPaid: &full})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if settled.Status != enum.InvoiceStatusPaid {
		t.Errorf("amountPaid == total should be paid, got %q", settled.Status)
	}
}

func TestInvoiceItemsPatchRecomputesTotals(t *testing.T) {
	s, _ := newLoadedInvoiceStore(t)
	ctx := context.Background()

	invoice, _ := s.Add(ctx, CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "p1", Price: 10, Quantity: 1}},
	})
	items := []entity.LineItem{{ID: "p2", Price: 20, Quantity: 2}}
	updated, err := s.Update(ctx, invoice.ID, InvoicePatch{Items: &items})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Subtotal != 40.00 || updated.Tax != 3.20 || updated.Total != 43.20 {
		t.Errorf("totals = %v/%v/%v, want 40.00/3.20/43.20", updated.Subtotal, updated.Tax, updated.Total)
	}
}

func TestInvoiceSetItemQuantityBoundaryMatchesRemove(t *testing.T) {
	s, _ := newLoadedInvoiceStore(t)
	ctx := context.Background()

	invoice, _ := s.Add(ctx, CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "X", Price: 2, Quantity: 4}},
	})
	updated, err := s.SetItemQuantity(ctx, invoice.ID, "X", 0)
	if err != nil {
		t.Fatalf("SetItemQuantity: %v", err)
	}
	if entity.FindItem(updated.Items, "X") != -1 {
		t.Errorf("quantity 0 should remove the item: %+v", updated.Items)
	}
}

func TestInvoiceLoadRestoresCollection(t *testing.T) {
	snaps := newMemSnapshots()
	s := NewInvoiceStore(snaps)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	created, _ := s.Add(ctx, CreateInvoiceInput{
		Items: []entity.LineItem{{ID: "p1", Price: 10, Quantity: 1}},
	})

	reopened := NewInvoiceStore(snaps)
	if err := reopened.Load(ctx); err != nil {
		t.Fatalf("reopen Load: %v", err)
	}
	list := reopened.List()
	if len(list) != 1 || list[0].ID != created.ID || list[0].Total != created.Total {
		t.Errorf("reopened collection = %+v", list)
	}
}
