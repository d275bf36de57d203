package loyalty

import (
	"encoding/json"
	"log"
	"net/http"

	"brewhouse/kv"
	"brewhouse/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	KV kv.Store
}

func NewHandler(store kv.Store) *Handler {
	return &Handler{KV: store}
}

// GetPoints handles GET /loyalty/:userid
func (h *Handler) GetPoints(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	points, err := LoadBalance(r.Context(), h.KV, userID)
	if err != nil {
		log.Printf("loyalty: failed to load balance for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch loyalty points")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"points": points})
}

// SetPoints handles POST /loyalty/:userid — an idempotent overwrite of the
// balance, safe to retry.
func (h *Handler) SetPoints(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	var body struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Points < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Points must be non-negative")
		return
	}

	if err := h.KV.Set(r.Context(), kv.LoyaltyPrefix+userID, body.Points); err != nil {
		log.Printf("loyalty: failed to store balance for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update loyalty points")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "points": body.Points})
}
