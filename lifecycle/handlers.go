package lifecycle

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"brewhouse/kv"
	"brewhouse/models"
	"brewhouse/mq"
	"brewhouse/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	KV  kv.Store
	Bus *mq.Bus
}

func NewHandler(store kv.Store, bus *mq.Bus) *Handler {
	return &Handler{KV: store, Bus: bus}
}

// GetOrder handles GET /orders/:orderid
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var order models.Order
	err := kv.GetJSON(r.Context(), h.KV, kv.OrderPrefix+orderID, &order)
	if errors.Is(err, kv.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Printf("lifecycle: failed to load order %s: %v", orderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}

// UpdateStatus handles PUT /orders/:orderid/status — the operator-driven
// transitions beyond ready. The sequence invariant is enforced here; the
// write itself is an idempotent upsert of the full order record.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !ValidStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	var order models.Order
	err := kv.GetJSON(r.Context(), h.KV, kv.OrderPrefix+orderID, &order)
	if errors.Is(err, kv.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Printf("lifecycle: failed to load order %s: %v", orderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	if err := Advance(order.Status, body.Status); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	order.Status = body.Status
	if err := h.KV.Set(r.Context(), kv.OrderPrefix+orderID, order); err != nil {
		log.Printf("lifecycle: failed to persist status for %s: %v", orderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if h.Bus != nil {
		h.Bus.Emit(r.Context(), mq.StatusEvent{OrderID: order.ID, OrderNumber: order.OrderNumber, Status: order.Status})
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}
