package enum

// OrderStatus represents the lifecycle state of an order.
// Orders are binary: they are either awaiting settlement or settled.
// The zero value (empty string) marks legacy records written before the
// status field existed and is backfilled to Paid at load time.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// Valid reports whether the status is one of the known order states.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}

func (s OrderStatus) String() string {
	return string(s)
}

// InvoiceStatus represents the settlement state of an invoice. Unlike
// orders, invoices track a payment ledger and can be partially settled.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether the status is one of the known invoice states.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPartial || s == InvoiceStatusPaid
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceStatusFor derives the invoice status from the amount paid so far
// against the invoice total. This is the single transition rule: it is
// re-evaluated on every change to amountPaid.
func InvoiceStatusFor(amountPaid, total float64) InvoiceStatus {
	switch {
	case amountPaid <= 0:
		return InvoiceStatusPending
	case amountPaid >= total:
		return InvoiceStatusPaid
	default:
		return InvoiceStatusPartial
	}
}
