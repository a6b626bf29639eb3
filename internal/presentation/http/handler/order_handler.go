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

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orders    *store.OrderStore
	publisher events.Publisher
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *store.OrderStore, publisher events.Publisher) *OrderHandler {
	return &OrderHandler{orders: orders, publisher: publisher}
}

// publish emits a document event. Event delivery is best-effort; a
// broker outage never fails the request.
func (h *OrderHandler) publish(action string, order *entity.Order) {
	err := h.publisher.PublishDocumentEvent(events.DocumentEvent{
		Kind:       "order",
		Action:     action,
		DocumentID: order.ID,
		Total:      order.Total,
	})
	if err != nil {
		log.Printf("orders: event publish failed: %v", err)
	}
}

// List handles listing orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := pagination.Paginate(h.orders.List(), &params)
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles retrieving a single order
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// Create handles ringing up a new order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.Add(c.Request.Context(), store.CreateOrderInput{
		Items:        request.ToEntityItems(req.Items),
		Status:       req.Status,
		PaymentType:  req.PaymentType,
		CustomerName: req.CustomerName,
	})
	middleware.RecordDocumentOperation("order", "create", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("created", order)
	response.Created(c, "Order created successfully", order)
}

// Update handles a partial update of an order
func (h *OrderHandler) Update(c *gin.Context) {
	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	patch := store.OrderPatch{
		Status:       req.Status,
		PaymentType:  req.PaymentType,
		CustomerName: req.CustomerName,
	}
	if req.Items != nil {
		items := request.ToEntityItems(*req.Items)
		patch.Items = &items
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), patch)
	middleware.RecordDocumentOperation("order", "update", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", order)
	response.OK(c, "Order updated successfully", order)
}

// AddItem handles merging a line item into an order
func (h *OrderHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.AddItem(c.Request.Context(), c.Param("id"), req.Item.ToEntity())
	middleware.RecordDocumentOperation("order", "add_item", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", order)
	response.OK(c, "Item added successfully", order)
}

// SetItemQuantity handles changing one line's quantity. Zero or less
// removes the line.
func (h *OrderHandler) SetItemQuantity(c *gin.Context) {
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.SetItemQuantity(c.Request.Context(), c.Param("id"), c.Param("itemId"), req.Quantity)
	middleware.RecordDocumentOperation("order", "set_quantity", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", order)
	response.OK(c, "Quantity updated successfully", order)
}

// RemoveItem handles dropping a line from an order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	order, err := h.orders.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	middleware.RecordDocumentOperation("order", "remove_item", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.publish("updated", order)
	response.OK(c, "Item removed successfully", order)
}
