// Package inventory is the admin stock view. Stock levels are set by hand;
// orders never decrement them.
package inventory

import (
	"context"
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

// GetInventory handles GET /inventory
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entries, err := h.KV.ScanPrefix(r.Context(), kv.InventoryPrefix)
	if err != nil {
		log.Printf("inventory: scan failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	items := make([]models.InventoryItem, 0, len(entries))
	for _, entry := range entries {
		var item models.InventoryItem
		if err := json.Unmarshal(entry.Value, &item); err != nil {
			log.Printf("inventory: skipping malformed record %s: %v", entry.Key, err)
			continue
		}
		items = append(items, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"inventory": items})
}

// SetStock handles PUT /inventory/:id
func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var body struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Stock must be non-negative")
		return
	}

	// Preserve the existing name/category on an update; a record created
	// through this endpoint carries the stock only.
	item := models.InventoryItem{ID: id, Stock: body.Stock}
	var existing models.InventoryItem
	if err := kv.GetJSON(r.Context(), h.KV, kv.InventoryPrefix+id, &existing); err == nil {
		item.Name = existing.Name
		item.Category = existing.Category
	}

	if err := h.KV.Set(r.Context(), kv.InventoryPrefix+id, item); err != nil {
		log.Printf("inventory: failed to store stock for %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update inventory")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "stock": body.Stock})
}

var defaultStock = []models.InventoryItem{
	{ID: "1", Name: "Espresso", Category: "Drinks", Stock: 45},
	{ID: "2", Name: "Cappuccino", Category: "Drinks", Stock: 38},
	{ID: "3", Name: "Latte", Category: "Drinks", Stock: 52},
	{ID: "4", Name: "Mocha", Category: "Drinks", Stock: 28},
	{ID: "5", Name: "Blueberry Muffin", Category: "Snacks", Stock: 15},
	{ID: "6", Name: "Croissant", Category: "Snacks", Stock: 22},
	{ID: "7", Name: "Peppermint Latte", Category: "Seasonal", Stock: 8},
	{ID: "8", Name: "Gingerbread Cookie", Category: "Seasonal", Stock: 31},
}

// Seed writes the default stock list when the inventory: namespace is empty.
func Seed(ctx context.Context, store kv.Store) error {
	entries, err := store.ScanPrefix(ctx, kv.InventoryPrefix)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	for _, item := range defaultStock {
		if err := store.Set(ctx, kv.InventoryPrefix+item.ID, item); err != nil {
			return err
		}
	}
	log.Printf("inventory: seeded %d stock records", len(defaultStock))
	return nil
}
