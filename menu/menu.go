package menu

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

// GetMenu handles GET /menu — a prefix scan is the only way to list the
// catalog, so the result order is whatever the backend yields.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entries, err := h.KV.ScanPrefix(r.Context(), kv.MenuPrefix)
	if err != nil {
		log.Printf("menu: scan failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}

	items := make([]models.CatalogItem, 0, len(entries))
	for _, entry := range entries {
		var item models.CatalogItem
		if err := json.Unmarshal(entry.Value, &item); err != nil {
			log.Printf("menu: skipping malformed record %s: %v", entry.Key, err)
			continue
		}
		items = append(items, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// CreateItem handles POST /menu
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if item.ID == "" {
		item.ID = utils.GenerateRandomString(14)
	}
	if err := item.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.KV.Set(r.Context(), kv.MenuPrefix+item.ID, item); err != nil {
		log.Printf("menu: failed to store item %s: %v", item.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create menu item")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}

// ReplaceItem handles PUT /menu/:id — the path id wins over any id in the
// body, matching the original surface.
func (h *Handler) ReplaceItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	item.ID = id
	if err := item.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.KV.Set(r.Context(), kv.MenuPrefix+id, item); err != nil {
		log.Printf("menu: failed to store item %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update menu item")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}

// DeleteItem handles DELETE /menu/:id
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.KV.Delete(r.Context(), kv.MenuPrefix+id); err != nil {
		log.Printf("menu: failed to delete item %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
