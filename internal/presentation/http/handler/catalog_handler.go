package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nashon/pos-ledger-api/internal/application/service"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/response"
	"github.com/nashon/pos-ledger-api/pkg/pagination"
)

// CatalogHandler serves the cached product and customer lists
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles listing the cached inventory
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := pagination.Paginate(h.catalog.Products(), &params)
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ListCustomers handles listing the cached customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := pagination.Paginate(h.catalog.Customers(), &params)
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Refresh handles an explicit catalog refetch from the backend
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog refreshed successfully", nil)
}
