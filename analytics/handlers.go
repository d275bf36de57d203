package analytics

import (
	"encoding/json"
	"log"
	"net/http"

	"brewhouse/kv"
	"brewhouse/models"
	"brewhouse/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	KV kv.Store
}

func NewHandler(store kv.Store) *Handler {
	return &Handler{KV: store}
}

func (h *Handler) loadOrders(r *http.Request) ([]models.Order, error) {
	entries, err := h.KV.ScanPrefix(r.Context(), kv.OrderPrefix)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(entries))
	for _, entry := range entries {
		var order models.Order
		if err := json.Unmarshal(entry.Value, &order); err != nil {
			log.Printf("analytics: skipping malformed record %s: %v", entry.Key, err)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GetOrders handles GET /analytics/orders — the raw full scan the original
// dashboard aggregates client-side.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orders, err := h.loadOrders(r)
	if err != nil {
		log.Printf("analytics: order scan failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": orders})
}

// GetSummary handles GET /analytics/summary — the server-side aggregation.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orders, err := h.loadOrders(r)
	if err != nil {
		log.Printf("analytics: order scan failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, Aggregate(orders))
}
