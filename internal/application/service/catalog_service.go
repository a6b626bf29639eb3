package service

import (
	"context"
	"log"
	"sync"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
)

// CatalogBackend is the slice of the backend client the catalog needs.
type CatalogBackend interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
}

// CatalogService caches the backend's inventory and customer lists for
// terminal lookups. Same reconciliation policy as gift cards: full
// refetch, fail-safe-empty.
type CatalogService struct {
	mu        sync.Mutex
	backend   CatalogBackend
	products  []entity.Product
	customers []entity.Customer
}

// NewCatalogService creates a catalog service over the backend client.
func NewCatalogService(backend CatalogBackend) *CatalogService {
	return &CatalogService{backend: backend}
}

// Refresh refetches both collections. The first failure wins; whichever
// collection failed is reset to empty.
func (s *CatalogService) Refresh(ctx context.Context) error {
	products, perr := s.backend.ListProducts(ctx)
	customers, cerr := s.backend.ListCustomers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if perr != nil {
		s.products = nil
		log.Printf("catalog: product refresh failed, cache reset: %v", perr)
	} else {
		s.products = products
	}
	if cerr != nil {
		s.customers = nil
		log.Printf("catalog: customer refresh failed, cache reset: %v", cerr)
	} else {
		s.customers = customers
	}

	if perr != nil {
		return perr
	}
	return cerr
}

// Products returns a copy of the cached inventory in backend order.
func (s *CatalogService) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Customers returns a copy of the cached customers in backend order.
func (s *CatalogService) Customers() []entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}
