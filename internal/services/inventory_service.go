package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
)

// InventoryService handles a school's tracked assets and consumables.
type InventoryService struct {
	inventory InventoryStore
	auditor
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventory InventoryStore, audits AuditStore) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		auditor:   auditor{audits: audits},
	}
}

// CreateItem creates an inventory item in the active school
func (s *InventoryService) CreateItem(ctx context.Context, scope repository.Scope, actor *auth.Identity, req *models.InventoryItemRequest) (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		UnitCostCents: req.UnitCostCents,
	}

	err := s.inventory.Create(ctx, scope, item)
	s.record(ctx, scope, actor, "inventory.create", "inventory_item", item.ID.String(), err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an inventory item
func (s *InventoryService) GetItem(ctx context.Context, scope repository.Scope, id uuid.UUID) (*models.InventoryItem, error) {
	return s.inventory.GetByID(ctx, scope, id)
}

// ListItems retrieves inventory items by category
func (s *InventoryService) ListItems(ctx context.Context, scope repository.Scope, category string, page repository.Page) ([]models.InventoryItem, error) {
	return s.inventory.List(ctx, scope, category, page)
}

// UpdateItem applies a request to an existing item
func (s *InventoryService) UpdateItem(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID, req *models.InventoryItemRequest) (*models.InventoryItem, error) {
	item, err := s.inventory.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Category = req.Category
	item.Quantity = req.Quantity
	item.UnitCostCents = req.UnitCostCents

	err = s.inventory.Update(ctx, scope, item)
	s.record(ctx, scope, actor, "inventory.update", "inventory_item", id.String(), err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem soft deletes an inventory item
func (s *InventoryService) DeleteItem(ctx context.Context, scope repository.Scope, actor *auth.Identity, id uuid.UUID) error {
	err := s.inventory.Delete(ctx, scope, id)
	s.record(ctx, scope, actor, "inventory.delete", "inventory_item", id.String(), err)
	return err
}
