// Package apitest runs an in-memory StockFlow backend for tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/fekuna/stockflow-console/internal/model"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      []byte
}

type failure struct {
	status int
	body   string
}

type Backend struct {
	mu       sync.Mutex
	products map[int64]model.Product
	nextID   int64
	requests []Request
	failures map[string][]failure
	alerts   map[int64]model.LowStockReport

	Server *httptest.Server
}

// NewBackend starts a server seeded with products. Seed IDs are kept.
func NewBackend(seed ...model.Product) *Backend {
	b := &Backend{
		products: map[int64]model.Product{},
		nextID:   1,
		failures: map[string][]failure{},
		alerts:   map[int64]model.LowStockReport{},
	}
	for _, p := range seed {
		b.products[p.ID] = p
		if p.ID >= b.nextID {
			b.nextID = p.ID + 1
		}
	}

	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/api/products", b.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products", b.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/products/{id:[0-9]+}", b.updateProduct).Methods(http.MethodPut)
	r.HandleFunc("/api/products/{id:[0-9]+}", b.deleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/api/companies/{id:[0-9]+}/alerts/low-stock", b.lowStock).Methods(http.MethodGet)

	b.Server = httptest.NewServer(r)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }
func (b *Backend) Close()      { b.Server.Close() }

// FailNext makes the next request with method answer status with body.
func (b *Backend) FailNext(method string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = append(b.failures[method], failure{status: status, body: body})
}

func (b *Backend) SetAlerts(companyID int64, report model.LowStockReport) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts[companyID] = report
}

func (b *Backend) SetStock(id int64, stock int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.products[id]; ok {
		p.Stock = stock
		b.products[id] = p
	}
}

func (b *Backend) Products() []model.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sorted()
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *Backend) sorted() []model.Product {
	out := make([]model.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Body:      body,
		})
		var injected *failure
		if queue := b.failures[r.Method]; len(queue) > 0 {
			injected = &queue[0]
			b.failures[r.Method] = queue[1:]
		}
		b.mu.Unlock()

		if injected != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(injected.status)
			_, _ = io.WriteString(w, injected.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type productPayload struct {
	Name     *string  `json:"name"`
	SKU      *string  `json:"sku"`
	Price    *float64 `json:"price"`
	IsBundle *bool    `json:"is_bundle"`
}

// decodePayload mimics FastAPI: malformed or incomplete bodies get 422 with a list detail.
func decodePayload(w http.ResponseWriter, r *http.Request) (*productPayload, bool) {
	var p productPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == nil || p.SKU == nil || p.Price == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "field required", "type": "value_error.missing"}},
		})
		return nil, false
	}
	return &p, true
}

// wireProduct sends price as a JSON number, like the real backend.
type wireProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	IsBundle bool    `json:"is_bundle"`
}

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	products := b.sorted()
	b.mu.Unlock()

	out := make([]wireProduct, len(products))
	for i, p := range products {
		out[i] = wireProduct{ID: p.ID, Name: p.Name, SKU: p.SKU, Price: p.Price.InexactFloat64(), Stock: p.Stock, IsBundle: p.IsBundle}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (b *Backend) skuTaken(sku string, exclude int64) bool {
	for id, p := range b.products {
		if id != exclude && p.SKU == sku {
			return true
		}
	}
	return false
}

func (b *Backend) createProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.skuTaken(*p.SKU, 0) {
		writeDetail(w, http.StatusBadRequest, "SKU must be unique")
		return
	}
	id := b.nextID
	b.nextID++
	b.products[id] = model.Product{
		ID:       id,
		Name:     *p.Name,
		SKU:      *p.SKU,
		Price:    decimal.NewFromFloat(*p.Price),
		IsBundle: p.IsBundle != nil && *p.IsBundle,
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Product created", "product_id": id})
}

func (b *Backend) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	current, exists := b.products[id]
	if !exists {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	if current.SKU != *p.SKU && b.skuTaken(*p.SKU, id) {
		writeDetail(w, http.StatusBadRequest, "SKU must be unique")
		return
	}
	current.Name = *p.Name
	current.SKU = *p.SKU
	current.Price = decimal.NewFromFloat(*p.Price)
	current.IsBundle = p.IsBundle != nil && *p.IsBundle
	b.products[id] = current
	writeJSON(w, http.StatusOK, map[string]any{"message": "Product updated", "product_id": id})
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.products[id]; !exists {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	delete(b.products, id)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Product deleted"})
}

func (b *Backend) lowStock(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	b.mu.Lock()
	report, ok := b.alerts[id]
	b.mu.Unlock()
	if !ok {
		report = model.LowStockReport{Alerts: []model.LowStockAlert{}}
	}
	writeJSON(w, http.StatusOK, report)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
