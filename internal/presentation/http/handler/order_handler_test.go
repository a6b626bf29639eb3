package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nashon/pos-ledger-api/internal/application/store"
	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/infrastructure/events"
)

type memSnapshots struct {
	data map[string][]byte
}

func (m *memSnapshots) Load(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memSnapshots) Save(_ context.Context, key string, data []byte) error {
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = data
	return nil
}

func newOrderRouter(t *testing.T) (*gin.Engine, *store.OrderStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := store.NewOrderStore(&memSnapshots{})
	if err := orders.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h := NewOrderHandler(orders, events.NewNoopPublisher())

	r := gin.New()
	r.GET("/orders", h.List)
	r.POST("/orders", h.Create)
	r.GET("/orders/:id", h.Get)
	r.POST("/orders/:id/items", h.AddItem)
	return r, orders
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestCreateOrderDerivesTotals(t *testing.T) {
	r, _ := newOrderRouter(t)

	body := `{"items":[{"id":"p1","name":"Coffee","price":10.00,"quantity":3}],"paymentType":"cash"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	var order entity.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("unmarshal order: %v", err)
	}

	if order.Subtotal != 30.00 || order.Tax != 2.40 || order.Total != 33 {
		t.Errorf("totals = %v/%v/%v, want 30.00/2.40/33", order.Subtotal, order.Tax, order.Total)
	}
	if order.ID == "" {
		t.Error("order id not assigned")
	}
}

func TestCreateOrderRejectsMissingItems(t *testing.T) {
	r, _ := newOrderRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetUnknownOrderReturns404(t *testing.T) {
	r, _ := newOrderRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/999", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	r, orders := newOrderRouter(t)

	created, err := orders.Add(context.Background(), store.CreateOrderInput{
		Items: []entity.LineItem{{ID: "p1", Name: "Coffee", Price: 5.00, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	body := `{"item":{"id":"p1","name":"Coffee","price":5.00,"quantity":3}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+created.ID+"/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got, err := orders.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 5 {
		t.Errorf("items = %+v, want one line with quantity 5", got.Items)
	}
}

func TestListOrdersPaginates(t *testing.T) {
	r, orders := newOrderRouter(t)

	for i := 0; i < 3; i++ {
		if _, err := orders.Add(context.Background(), store.CreateOrderInput{
			Items: []entity.LineItem{{ID: "p1", Name: "Coffee", Price: 1.00, Quantity: 1}},
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?page=1&per_page=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	var page struct {
		Items      []entity.Order `json:"items"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
			HasNext    bool  `json:"has_next"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("unmarshal page: %v", err)
	}

	if len(page.Items) != 2 || page.Pagination.Total != 3 || !page.Pagination.HasNext {
		t.Errorf("page = %d items, total %d, hasNext %v; want 2/3/true",
			len(page.Items), page.Pagination.Total, page.Pagination.HasNext)
	}
}
