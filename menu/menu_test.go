package menu

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
	router.GET("/menu", h.GetMenu)
	router.POST("/menu", h.CreateItem)
	router.PUT("/menu/:id", h.ReplaceItem)
	router.DELETE("/menu/:id", h.DeleteItem)
	return router, store
}

func listItems(t *testing.T, router *httprouter.Router) []models.CatalogItem {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/menu", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /menu returned %d", rec.Code)
	}
	var body struct {
		Items []models.CatalogItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body.Items
}

func TestSeedThenList(t *testing.T) {
	router, store := newTestRouter(t)
	if err := Seed(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	items := listItems(t, router)
	if len(items) != 12 {
		t.Fatalf("expected 12 seeded items, got %d", len(items))
	}
	// seeding again must not duplicate
	if err := Seed(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	if items := listItems(t, router); len(items) != 12 {
		t.Fatalf("second seed changed item count to %d", len(items))
	}
}

func TestCreateAndReplace(t *testing.T) {
	router, _ := newTestRouter(t)

	item := models.CatalogItem{Name: "Flat White", Category: "Espresso", Price: 4.50}
	payload, _ := json.Marshal(item)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/menu", bytes.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /menu returned %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Item models.CatalogItem `json:"item"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Item.ID == "" {
		t.Fatal("created item has no id")
	}

	// replace under path id
	updated := models.CatalogItem{Name: "Flat White", Category: "Espresso", Price: 4.95}
	payload, _ = json.Marshal(updated)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("PUT", "/menu/"+created.Item.ID, bytes.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /menu returned %d: %s", rec.Code, rec.Body.String())
	}

	items := listItems(t, router)
	if len(items) != 1 || items[0].Price != 4.95 || items[0].ID != created.Item.ID {
		t.Fatalf("unexpected items after replace: %+v", items)
	}
}

func TestCreateValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	bad := models.CatalogItem{Name: "", Price: 2.00}
	payload, _ := json.Marshal(bad)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/menu", bytes.NewReader(payload)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", rec.Code)
	}

	negative := models.CatalogItem{Name: "Mystery", Price: -1}
	payload, _ = json.Marshal(negative)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/menu", bytes.NewReader(payload)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	router, store := newTestRouter(t)
	if err := store.Set(context.Background(), kv.MenuPrefix+"x1", models.CatalogItem{ID: "x1", Name: "Doomed", Price: 1}); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/menu/x1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE returned %d", rec.Code)
	}
	if items := listItems(t, router); len(items) != 0 {
		t.Fatalf("item still listed after delete: %+v", items)
	}
}
