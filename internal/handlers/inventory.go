package handlers

import (
	"net/http"

	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/services"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// CreateItem creates an inventory item
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.InventoryItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.inventoryService.CreateItem(r.Context(), scope, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// GetItem retrieves an inventory item
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.inventoryService.GetItem(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// ListItems retrieves inventory items
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	_, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.inventoryService.ListItems(r.Context(), scope, r.URL.Query().Get("category"), pageFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// UpdateItem updates an inventory item
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.InventoryItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.inventoryService.UpdateItem(r.Context(), scope, identity, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem soft deletes an inventory item
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := urlUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.inventoryService.DeleteItem(r.Context(), scope, identity, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
