package cart

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"brewhouse/kv"
	"brewhouse/models"
	"brewhouse/pricing"
	"brewhouse/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	KV    kv.Store
	Carts *Store
}

func NewHandler(store kv.Store, carts *Store) *Handler {
	return &Handler{KV: store, Carts: carts}
}

// GetCart returns the caller's cart lines with derived totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	lines := h.Carts.Lines(userID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":     lines,
		"subtotal":  h.Carts.Subtotal(userID),
		"itemCount": h.Carts.ItemCount(userID),
	})
}

// AddToCart resolves the catalog item by id and appends a line.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ItemID        string               `json:"itemId"`
		Customization models.Customization `json:"customization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var item models.CatalogItem
	err := kv.GetJSON(r.Context(), h.KV, kv.MenuPrefix+body.ItemID, &item)
	if errors.Is(err, kv.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	if err != nil {
		log.Printf("cart: failed to load menu item %s: %v", body.ItemID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	line := h.Carts.Add(userID, item, body.Customization)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"item":      line,
		"unitPrice": pricing.UnitPrice(item, body.Customization),
	})
}

// UpdateQuantity sets a line's quantity; 0 removes it.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	err := h.Carts.SetQuantity(userID, ps.ByName("lineid"), body.Quantity)
	switch {
	case errors.Is(err, ErrNegativeQuantity):
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must not be negative")
	case errors.Is(err, ErrLineNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Line item not found")
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
	default:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated", "subtotal": h.Carts.Subtotal(userID)})
	}
}

// RemoveLine deletes a line from the cart.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Carts.Remove(userID, ps.ByName("lineid")); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Line item not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "removed"})
}
