package entity

import (
	"time"

	"github.com/nashon/pos-ledger-api/internal/domain/enum"
)

// LineItem is one product-quantity-price entry within an order or invoice.
// Quantity is always positive: a mutation that would drive it to zero or
// below removes the line instead.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Payment is one entry in an invoice's payment ledger. Payments are
// append-only: once recorded they are never mutated or deleted.
type Payment struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Order represents one sales transaction rung up at the terminal.
// Subtotal, Tax and Total are derived from Items and are only ever
// written by the recalculation engine.
type Order struct {
	ID           string           `json:"id"`
	Timestamp    time.Time        `json:"timestamp"`
	Items        []LineItem       `json:"items"`
	Subtotal     float64          `json:"subtotal"`
	Tax          float64          `json:"tax"`
	Total        float64          `json:"total"`
	Status       enum.OrderStatus `json:"status,omitempty"`
	PaymentType  string           `json:"paymentType,omitempty"`
	CustomerName string           `json:"customerName,omitempty"`
}

// Invoice represents a billed transaction settled over time through the
// payment ledger. AmountPaid is the cumulative sum of Payments and drives
// the status transitions.
type Invoice struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Items        []LineItem         `json:"items"`
	Subtotal     float64            `json:"subtotal"`
	Tax          float64            `json:"tax"`
	Total        float64            `json:"total"`
	Status       enum.InvoiceStatus `json:"status"`
	AmountPaid   float64            `json:"amountPaid"`
	Payments     []Payment          `json:"payments"`
	CustomerName string             `json:"customerName,omitempty"`
}

// FindItem returns the index of the line item with the given product id,
// or -1 when absent.
func FindItem(items []LineItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// MergeItem returns a new item slice with the given item applied: if a
// line with the same product id exists its quantity is incremented,
// otherwise the item is appended.
func MergeItem(items []LineItem, item LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	if i := FindItem(out, item.ID); i >= 0 {
		out[i].Quantity += item.Quantity
		return out
	}
	return append(out, item)
}

// RemoveItem returns a new item slice without the line matching itemID.
func RemoveItem(items []LineItem, itemID string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	return out
}
