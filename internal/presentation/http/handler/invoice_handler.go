package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nashon/pos-ledger-api/internal/application/store"
	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/infrastructure/events"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/request"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/response"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/middleware"
	"github.com/nashon/pos-ledger-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoices  *store.InvoiceStore
	publisher events.Publisher
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices *store.InvoiceStore, publisher events.Publisher) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, publisher: publisher}
}

func (h *InvoiceHandler) publish(action string, invoice *entity.Invoice) {
	err := h.publisher.PublishDocumentEvent(events.DocumentEvent{
		Kind:       "invoice",
		Action:     action,
		DocumentID: invoice.ID,
		Total:      invoice.Total,
	})
	if err != nil {
		log.Printf("invoices: event publish failed: %v", err)
	}
}

// List handles listing invoices, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := pagination.Paginate(h.invoices.List(), &params)
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoices.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles opening a new invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.invoices.Add(c.Request.Context(), store.CreateInvoiceInput{
		Items:        request.ToEntityItems(req.Items),
		AmountPaid:   req.AmountPaid,
		CustomerName: req.CustomerName,
	})
	middleware.RecordDocumentOperation("invoice", "create", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("created", invoice)
	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles a partial update of an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	patch := store.InvoicePatch{
		AmountPaid:   req.AmountPaid,
		CustomerName: req.CustomerName,
	}
	if req.Items != nil {
		items := request.ToEntityItems(*req.Items)
		patch.Items = &items
	}

	invoice, err := h.invoices.Update(c.Request.Context(), c.Param("id"), patch)
	middleware.RecordDocumentOperation("invoice", "update", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", invoice)
	response.OK(c, "Invoice updated successfully", invoice)
}

// AddItem handles merging a line item into an invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.invoices.AddItem(c.Request.Context(), c.Param("id"), req.Item.ToEntity())
	middleware.RecordDocumentOperation("invoice", "add_item", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", invoice)
	response.OK(c, "Item added successfully", invoice)
}

// SetItemQuantity handles changing one line's quantity; zero or less
// removes the line.
func (h *InvoiceHandler) SetItemQuantity(c *gin.Context) {
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.invoices.SetItemQuantity(c.Request.Context(), c.Param("id"), c.Param("itemId"), req.Quantity)
	middleware.RecordDocumentOperation("invoice", "set_quantity", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", invoice)
	response.OK(c, "Quantity updated successfully", invoice)
}

// RemoveItem handles dropping a line from an invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	invoice, err := h.invoices.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	middleware.RecordDocumentOperation("invoice", "remove_item", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", invoice)
	response.OK(c, "Item removed successfully", invoice)
}

// AddPayment handles recording a payment against an invoice
func (h *InvoiceHandler) AddPayment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.invoices.AddPayment(c.Request.Context(), c.Param("id"), store.PaymentInput{
		Amount:      req.Amount,
		Method:      req.Method,
		Description: req.Description,
	})
	middleware.RecordDocumentOperation("invoice", "payment", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("payment", invoice)
	response.OK(c, "Payment recorded successfully", invoice)
}
