// Package ratings stores one rating per completed order. A second
// submission for the same order overwrites the first; no history is kept.
package ratings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"brewhouse/kv"
	"brewhouse/lifecycle"
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

// SubmitRating handles POST /ratings — an upsert keyed by order id,
// accepted only once the order is completed.
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rating models.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := rating.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rating.Timestamp.IsZero() {
		rating.Timestamp = time.Now()
	}

	var order models.Order
	err := kv.GetJSON(r.Context(), h.KV, kv.OrderPrefix+rating.OrderID, &order)
	if errors.Is(err, kv.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Printf("ratings: failed to load order %s: %v", rating.OrderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save rating")
		return
	}
	if order.Status != lifecycle.StatusCompleted {
		utils.RespondWithError(w, http.StatusConflict, "Only completed orders can be rated")
		return
	}
	if rating.OrderNumber == "" {
		rating.OrderNumber = order.OrderNumber
	}

	if err := h.KV.Set(r.Context(), kv.RatingPrefix+rating.OrderID, rating); err != nil {
		log.Printf("ratings: failed to store rating for %s: %v", rating.OrderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save rating")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "rating": rating})
}

// GetRating handles GET /ratings/:orderid — an absent rating is "no record
// yet", returned as null, never an error.
func (h *Handler) GetRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var rating models.Rating
	err := kv.GetJSON(r.Context(), h.KV, kv.RatingPrefix+orderID, &rating)
	if errors.Is(err, kv.ErrNotFound) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"rating": nil})
		return
	}
	if err != nil {
		log.Printf("ratings: failed to load rating for %s: %v", orderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch rating")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rating": rating})
}
