package request

import (
	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
)

// LineItemRequest represents one line in a document payload
type LineItemRequest struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

// ToEntity converts the request line to the domain shape
func (r LineItemRequest) ToEntity() entity.LineItem {
	return entity.LineItem{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}

// ToEntityItems converts a slice of request lines to the domain shape
func ToEntityItems(items []LineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, it := range items {
		out[i] = it.ToEntity()
	}
	return out
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	Items        []LineItemRequest `json:"items" binding:"required,dive"`
	Status       enum.OrderStatus  `json:"status"`
	PaymentType  string            `json:"paymentType"`
	CustomerName string            `json:"customerName"`
}

// UpdateOrderRequest represents an order update request. Nil fields are
// left unchanged.
type UpdateOrderRequest struct {
	Items        *[]LineItemRequest `json:"items" binding:"omitempty,dive"`
	Status       *enum.OrderStatus  `json:"status"`
	PaymentType  *string            `json:"paymentType"`
	CustomerName *string            `json:"customerName"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	Items        []LineItemRequest `json:"items" binding:"required,dive"`
	AmountPaid   float64           `json:"amountPaid" binding:"min=0"`
	CustomerName string            `json:"customerName"`
}

// UpdateInvoiceRequest represents an invoice update request. Nil fields
// are left unchanged.
type UpdateInvoiceRequest struct {
	Items        *[]LineItemRequest `json:"items" binding:"omitempty,dive"`
	AmountPaid   *float64           `json:"amountPaid" binding:"omitempty,min=0"`
	CustomerName *string            `json:"customerName"`
}

// AddItemRequest represents an add-line request against a document
type AddItemRequest struct {
	Item LineItemRequest `json:"item" binding:"required"`
}

// SetQuantityRequest represents a quantity change for one line. Zero or
// negative removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PaymentRequest represents one payment recorded against an invoice
type PaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Method      string  `json:"method"`
	Description string  `json:"description"`
}
