package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
	"github.com/nashon/pos-ledger-api/internal/domain/repository"
	"github.com/nashon/pos-ledger-api/internal/domain/totals"
	"github.com/nashon/pos-ledger-api/pkg/apperror"
)

const invoiceSnapshotKey = "invoices"

// InvoiceStore holds the authoritative in-session list of invoices,
// newest first. Invoices differ from orders in carrying a payment ledger
// whose cumulative amount drives the pending/partial/paid status.
type InvoiceStore struct {
	mu        sync.Mutex
	snapshots repository.SnapshotRepository
	invoices  []entity.Invoice
}

// NewInvoiceStore creates an invoice store over the given snapshot
// repository. Call Load before serving traffic.
func NewInvoiceStore(snapshots repository.SnapshotRepository) *InvoiceStore {
	return &InvoiceStore{snapshots: snapshots}
}

// CreateInvoiceInput is the caller-supplied part of a new invoice.
type CreateInvoiceInput struct {
	Items        []entity.LineItem
	AmountPaid   float64
	CustomerName string
}

// InvoicePatch is an explicit partial update. Setting Items recomputes
// the totals; setting AmountPaid re-derives the status.
type InvoicePatch struct {
	Items        *[]entity.LineItem
	AmountPaid   *float64
	CustomerName *string
}

// PaymentInput is one payment to record against an invoice.
type PaymentInput struct {
	Amount      float64
	Method      string
	Description string
}

// Load reads the persisted collection, discarding an unreadable snapshot
// with a log line rather than failing startup.
func (s *InvoiceStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.snapshots.Load(ctx, invoiceSnapshotKey)
	if err != nil {
		log.Printf("invoice store: snapshot unavailable, starting empty: %v", err)
		s.invoices = nil
		return nil
	}
	if data == nil {
		s.invoices = nil
		return nil
	}

	var invoices []entity.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		log.Printf("invoice store: discarding unreadable snapshot: %v", err)
		s.invoices = nil
		return nil
	}
	s.invoices = invoices
	return nil
}

// List returns a copy of the collection, newest first.
func (s *InvoiceStore) List() []entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Get returns the invoice with the given id.
func (s *InvoiceStore) Get(id string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.find(id); i >= 0 {
		inv := s.invoices[i]
		return &inv, nil
	}
	return nil, apperror.NewNotFoundError("Invoice")
}

// Add constructs a new invoice, derives totals and status, prepends it
// and persists before returning.
func (s *InvoiceStore) Add(ctx context.Context, input CreateInvoiceInput) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.AmountPaid < 0 {
		return nil, apperror.NewBadRequestError("Amount paid cannot be negative")
	}

	t := totals.ForInvoice(input.Items)
	invoice := entity.Invoice{
		ID:           NewDocumentID(),
		Timestamp:    time.Now().UTC(),
		Items:        append([]entity.LineItem(nil), input.Items...),
		Subtotal:     t.Subtotal,
		Tax:          t.Tax,
		Total:        t.Total,
		AmountPaid:   input.AmountPaid,
		Status:       enum.InvoiceStatusFor(input.AmountPaid, t.Total),
		Payments:     []entity.Payment{},
		CustomerName: input.CustomerName,
	}

	next := make([]entity.Invoice, 0, len(s.invoices)+1)
	next = append(next, invoice)
	next = append(next, s.invoices...)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.invoices = next
	return &invoice, nil
}

// Update applies a patch to the invoice with the given id. Unknown ids
// are an explicit not-found error.
func (s *InvoiceStore) Update(ctx context.Context, id string, patch InvoicePatch) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, id, patch)
}

func (s *InvoiceStore) updateLocked(ctx context.Context, id string, patch InvoicePatch) (*entity.Invoice, error) {
	idx := s.find(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	next := make([]entity.Invoice, len(s.invoices))
	copy(next, s.invoices)
	invoice := &next[idx]

	if patch.Items != nil {
		invoice.Items = append([]entity.LineItem(nil), (*patch.Items)...)
		t := totals.ForInvoice(invoice.Items)
		invoice.Subtotal, invoice.Tax, invoice.Total = t.Subtotal, t.Tax, t.Total
	}
	if patch.AmountPaid != nil {
		invoice.AmountPaid = *patch.AmountPaid
		invoice.Status = enum.InvoiceStatusFor(invoice.AmountPaid, invoice.Total)
	}
	if patch.CustomerName != nil {
		invoice.CustomerName = *patch.CustomerName
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.invoices = next
	out := *invoice
	return &out, nil
}

// AddItem merges an item into the invoice the same way orders do.
func (s *InvoiceStore) AddItem(ctx context.Context, invoiceID string, item entity.LineItem) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(invoiceID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	items := entity.MergeItem(s.invoices[idx].Items, item)
	return s.updateLocked(ctx, invoiceID, InvoicePatch{Items: &items})
}

// RemoveItem drops the line with the given product id.
func (s *InvoiceStore) RemoveItem(ctx context.Context, invoiceID, itemID string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeItemLocked(ctx, invoiceID, itemID)
}

func (s *InvoiceStore) removeItemLocked(ctx context.Context, invoiceID, itemID string) (*entity.Invoice, error) {
	idx := s.find(invoiceID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	items := entity.RemoveItem(s.invoices[idx].Items, itemID)
	return s.updateLocked(ctx, invoiceID, InvoicePatch{Items: &items})
}

// SetItemQuantity sets a line's quantity; zero or less removes the line.
func (s *InvoiceStore) SetItemQuantity(ctx context.Context, invoiceID, itemID string, quantity int) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeItemLocked(ctx, invoiceID, itemID)
	}

	idx := s.find(invoiceID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	items := append([]entity.LineItem(nil), s.invoices[idx].Items...)
	if i := entity.FindItem(items, itemID); i >= 0 {
		items[i].Quantity = quantity
	}
	return s.updateLocked(ctx, invoiceID, InvoicePatch{Items: &items})
}

// AddPayment appends a payment to the invoice's ledger, bumps the
// cumulative amount paid and re-derives the status. Payments are
// append-only; there is no path that edits or removes one.
func (s *InvoiceStore) AddPayment(ctx context.Context, invoiceID string, input PaymentInput) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(invoiceID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	next := make([]entity.Invoice, len(s.invoices))
	copy(next, s.invoices)
	invoice := &next[idx]

	payment := entity.Payment{
		ID:          uuid.New().String(),
		Amount:      input.Amount,
		Method:      input.Method,
		Description: input.Description,
		Timestamp:   time.Now().UTC(),
	}
	invoice.Payments = append(append([]entity.Payment(nil), invoice.Payments...), payment)
	invoice.AmountPaid = totals.Round2(invoice.AmountPaid + input.Amount)
	invoice.Status = enum.InvoiceStatusFor(invoice.AmountPaid, invoice.Total)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.invoices = next
	out := *invoice
	return &out, nil
}

func (s *InvoiceStore) find(id string) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *InvoiceStore) persist(ctx context.Context, invoices []entity.Invoice) error {
	if invoices == nil {
		invoices = []entity.Invoice{}
	}
	data, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("failed to serialize invoices: %w", err)
	}
	return s.snapshots.Save(ctx, invoiceSnapshotKey, data)
}
