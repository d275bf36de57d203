package ratings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewhouse/kv"
	"brewhouse/lifecycle"
	"brewhouse/models"

	"github.com/julienschmidt/httprouter"
)

func newTestRouter(t *testing.T) (*httprouter.Router, kv.Store) {
	t.Helper()
	store := kv.NewMemory()
	h := NewHandler(store)
	router := httprouter.New()
	router.POST("/ratings", h.SubmitRating)
	router.GET("/ratings/:orderid", h.GetRating)
	return router, store
}

func seedOrder(t *testing.T, store kv.Store, id, status string) {
	t.Helper()
	order := models.Order{ID: id, OrderNumber: "#55555", Status: status}
	if err := store.Set(context.Background(), kv.OrderPrefix+id, order); err != nil {
		t.Fatal(err)
	}
}

func submit(t *testing.T, router *httprouter.Router, rating models.Rating) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(rating)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/ratings", bytes.NewReader(payload)))
	return rec
}

func TestSubmitAndFetch(t *testing.T) {
	router, store := newTestRouter(t)
	seedOrder(t, store, "o1", lifecycle.StatusCompleted)

	rec := submit(t, router, models.Rating{OrderID: "o1", Rating: 5, Comment: "great"})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ratings/o1", nil))
	var body struct {
		Rating *models.Rating `json:"rating"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Rating == nil || body.Rating.Rating != 5 {
		t.Fatalf("unexpected rating payload: %+v", body.Rating)
	}
	if body.Rating.OrderNumber != "#55555" {
		t.Fatalf("order number not filled in: %q", body.Rating.OrderNumber)
	}
}

func TestResubmitOverwrites(t *testing.T) {
	router, store := newTestRouter(t)
	seedOrder(t, store, "o1", lifecycle.StatusCompleted)

	submit(t, router, models.Rating{OrderID: "o1", Rating: 2, Comment: "meh"})
	rec := submit(t, router, models.Rating{OrderID: "o1", Rating: 4, Comment: "better"})
	if rec.Code != http.StatusOK {
		t.Fatalf("resubmit returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ratings/o1", nil))
	var body struct {
		Rating *models.Rating `json:"rating"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Rating.Rating != 4 || body.Rating.Comment != "better" {
		t.Fatalf("second submission did not overwrite: %+v", body.Rating)
	}
}

func TestRejectsIncompleteOrder(t *testing.T) {
	router, store := newTestRouter(t)
	seedOrder(t, store, "o1", lifecycle.StatusPreparing)

	rec := submit(t, router, models.Rating{OrderID: "o1", Rating: 5})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for incomplete order, got %d", rec.Code)
	}
}

func TestRejectsUnknownOrderAndBadStars(t *testing.T) {
	router, store := newTestRouter(t)
	seedOrder(t, store, "o1", lifecycle.StatusCompleted)

	rec := submit(t, router, models.Rating{OrderID: "ghost", Rating: 3})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", rec.Code)
	}
	for _, stars := range []int{0, 6, -1} {
		rec := submit(t, router, models.Rating{OrderID: "o1", Rating: stars})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %d stars, got %d", stars, rec.Code)
		}
	}
}

func TestFetchAbsentRating(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ratings/none", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("absent rating should be 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["rating"] != nil {
		t.Fatalf("absent rating should be null, got %v", body["rating"])
	}
}
