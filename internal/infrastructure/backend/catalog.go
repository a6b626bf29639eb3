package backend

import (
	"context"
	"encoding/json"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
)

const (
	productsPath  = "/products/"
	customersPath = "/customers/"
)

// productRecord is the backend's wire shape for an inventory item.
type productRecord struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	Price         string      `json:"price"`
	StockQuantity int         `json:"stock_quantity"`
	CategoryName  string      `json:"category_name"`
	Barcode       string      `json:"barcode"`
}

func (r productRecord) toLocal() entity.Product {
	return entity.Product{
		ID:       r.ID.String(),
		Name:     r.Name,
		Price:    parseMoney(r.Price),
		Stock:    r.StockQuantity,
		Category: r.CategoryName,
		Barcode:  r.Barcode,
	}
}

// customerRecord is the backend's wire shape for a customer.
type customerRecord struct {
	ID            json.Number `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	PhoneNumber   string      `json:"phone_number"`
	Address       string      `json:"address"`
}

func (r customerRecord) toLocal() entity.Customer {
	return entity.Customer{
		ID:      r.ID.String(),
		Name:    r.CustomerName,
		Email:   r.CustomerEmail,
		Phone:   r.PhoneNumber,
		Address: r.Address,
	}
}

// ListProducts fetches the full inventory collection in backend order.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	records, err := fetchList[productRecord](ctx, c, productsPath)
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toLocal())
	}
	return products, nil
}

// ListCustomers fetches the full customer collection in backend order.
func (c *Client) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	records, err := fetchList[customerRecord](ctx, c, customersPath)
	if err != nil {
		return nil, err
	}
	customers := make([]entity.Customer, 0, len(records))
	for _, r := range records {
		customers = append(customers, r.toLocal())
	}
	return customers, nil
}
