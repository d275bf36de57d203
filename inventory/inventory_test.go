package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewhouse/kv"
	"brewhouse/models"

	"github.com/julienschmidt/httprouter"
)

func newTestRouter(t *testing.T) (*httprouter.Router, kv.Store) {
	t.Helper()
	store := kv.NewMemory()
	h := NewHandler(store)
	router := httprouter.New()
	router.GET("/inventory", h.GetInventory)
	router.PUT("/inventory/:id", h.SetStock)
	return router, store
}

func TestSeedAndList(t *testing.T) {
	router, store := newTestRouter(t)
	if err := Seed(context.Background(), store); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/inventory", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /inventory returned %d", rec.Code)
	}
	var body struct {
		Inventory []models.InventoryItem `json:"inventory"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Inventory) != 8 {
		t.Fatalf("expected 8 seeded records, got %d", len(body.Inventory))
	}
}

func TestSetStockPreservesName(t *testing.T) {
	router, store := newTestRouter(t)
	ctx := context.Background()
	if err := store.Set(ctx, kv.InventoryPrefix+"1", models.InventoryItem{ID: "1", Name: "Espresso", Category: "Drinks", Stock: 45}); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("PUT", "/inventory/1", bytes.NewReader([]byte(`{"stock":12}`))))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /inventory returned %d: %s", rec.Code, rec.Body.String())
	}

	var item models.InventoryItem
	if err := kv.GetJSON(ctx, store, kv.InventoryPrefix+"1", &item); err != nil {
		t.Fatal(err)
	}
	if item.Stock != 12 || item.Name != "Espresso" {
		t.Fatalf("unexpected record after update: %+v", item)
	}
}

func TestSetStockRejectsNegative(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("PUT", "/inventory/1", bytes.NewReader([]byte(`{"stock":-1}`))))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative stock, got %d", rec.Code)
	}
}
