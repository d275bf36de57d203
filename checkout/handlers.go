package checkout

import (
	"encoding/json"
	"log"
	"net/http"

	"brewhouse/cart"
	"brewhouse/kv"
	"brewhouse/lifecycle"
	"brewhouse/loyalty"
	"brewhouse/models"
	"brewhouse/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	KV    kv.Store
	Carts *cart.Store
	Sched *lifecycle.Scheduler
}

func NewHandler(store kv.Store, carts *cart.Store, sched *lifecycle.Scheduler) *Handler {
	return &Handler{KV: store, Carts: carts, Sched: sched}
}

// PlaceOrder handles POST /checkout: assemble the caller's cart into an
// order, persist it, apply the point delta, arm the ready timer, clear the
// cart. The order write and the balance write are independent idempotent
// upserts; a failure in either is logged and the response stays optimistic.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Type       string `json:"type"`
		Address    string `json:"address"`
		PointsUsed int    `json:"pointsUsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	balance, err := loyalty.LoadBalance(r.Context(), h.KV, userID)
	if err != nil {
		// Treated like any other gateway failure: log and proceed with a
		// zero balance, which simply disallows redemption.
		log.Printf("checkout: failed to load balance for %s: %v", userID, err)
		balance = 0
	}

	lines := h.Carts.Lines(userID)
	order, err := Assemble(lines, balance, body.Type, body.Address, body.PointsUsed, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	newBalance, err := loyalty.ApplyOrder(balance, order.PointsUsed, order.PointsEarned)
	if err != nil {
		// Unreachable after Assemble validated the redemption; fail loud.
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Two unordered idempotent upserts; neither rolls the other back.
	if err := h.KV.Set(r.Context(), kv.OrderPrefix+order.ID, order); err != nil {
		log.Printf("checkout: failed to persist order %s: %v", order.ID, err)
	}
	if err := loyalty.SaveBalance(r.Context(), h.KV, userID, newBalance); err != nil {
		log.Printf("checkout: failed to persist balance for %s: %v", userID, err)
	}

	h.Sched.ScheduleReady(order.ID)
	h.Carts.Clear(userID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"order":   order,
		"points":  newBalance,
	})
}

// SaveOrder handles POST /orders: persist a caller-supplied order record,
// upserted by id so a retry converges on the same state.
func (h *Handler) SaveOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}
	if order.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order id is required")
		return
	}
	if order.Status == "" {
		order.Status = lifecycle.StatusPreparing
	}
	if !lifecycle.ValidStatus(order.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	if err := h.KV.Set(r.Context(), kv.OrderPrefix+order.ID, order); err != nil {
		log.Printf("checkout: failed to persist order %s: %v", order.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save order")
		return
	}
	if order.Status == lifecycle.StatusPreparing {
		h.Sched.ScheduleReady(order.ID)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}
