package loyalty

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewhouse/kv"

	"github.com/julienschmidt/httprouter"
)

func newTestRouter(t *testing.T) (*httprouter.Router, kv.Store) {
	t.Helper()
	store := kv.NewMemory()
	h := NewHandler(store)
	router := httprouter.New()
	router.GET("/loyalty/:userid", h.GetPoints)
	router.POST("/loyalty/:userid", h.SetPoints)
	return router, store
}

func getPoints(t *testing.T, router *httprouter.Router, userID string) int {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/loyalty/"+userID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /loyalty returned %d", rec.Code)
	}
	var body struct {
		Points int `json:"points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body.Points
}

func TestAbsentBalanceReadsAsZero(t *testing.T) {
	router, _ := newTestRouter(t)
	if got := getPoints(t, router, "newcomer"); got != 0 {
		t.Fatalf("absent balance = %d, want 0", got)
	}
}

func TestOverwriteBalance(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := bytes.NewReader([]byte(`{"points":275}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/loyalty/u1", payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /loyalty returned %d: %s", rec.Code, rec.Body.String())
	}
	if got := getPoints(t, router, "u1"); got != 275 {
		t.Fatalf("balance = %d, want 275", got)
	}

	// overwrite is idempotent: repeating converges on the same value
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/loyalty/u1", bytes.NewReader([]byte(`{"points":275}`))))
	if got := getPoints(t, router, "u1"); got != 275 {
		t.Fatalf("balance after retry = %d, want 275", got)
	}
}

func TestRejectNegativeBalance(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/loyalty/u1", bytes.NewReader([]byte(`{"points":-5}`))))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative points, got %d", rec.Code)
	}
}

func TestLoadAndSaveBalance(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	if err := SaveBalance(ctx, store, "u1", 420); err != nil {
		t.Fatal(err)
	}
	got, err := LoadBalance(ctx, store, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got != 420 {
		t.Fatalf("LoadBalance = %d, want 420", got)
	}
}
