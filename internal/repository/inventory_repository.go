package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

// InventoryRepository handles inventory items under a scope.
type InventoryRepository struct{}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Create creates an inventory item tagged with the scope's school
func (r *InventoryRepository) Create(ctx context.Context, scope Scope, item *models.InventoryItem) error {
	schoolID, err := scope.stamp(item.SchoolID)
	if err != nil {
		return err
	}
	item.SchoolID = schoolID
	if err := scope.db(ctx).Create(item).Error; err != nil {
		return wrapErr("create inventory item", err)
	}
	return nil
}

// GetByID retrieves an inventory item within scope
func (r *InventoryRepository) GetByID(ctx context.Context, scope Scope, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := scope.query(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, wrapErr("get inventory item", err)
	}
	return &item, nil
}

// List retrieves inventory items within scope; empty category means all.
func (r *InventoryRepository) List(ctx context.Context, scope Scope, category string, page Page) ([]models.InventoryItem, error) {
	query := scope.query(ctx).Model(&models.InventoryItem{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.InventoryItem
	if err := page.apply(query.Order("name ASC")).Find(&items).Error; err != nil {
		return nil, wrapErr("list inventory items", err)
	}
	return items, nil
}

// Update saves changes to an inventory item within scope
func (r *InventoryRepository) Update(ctx context.Context, scope Scope, item *models.InventoryItem) error {
	if !scope.Unrestricted && item.SchoolID != scope.SchoolID {
		return apperrors.ErrNotFound
	}
	if err := scope.db(ctx).Save(item).Error; err != nil {
		return wrapErr("update inventory item", err)
	}
	return nil
}

// Delete soft deletes an inventory item within scope
func (r *InventoryRepository) Delete(ctx context.Context, scope Scope, id uuid.UUID) error {
	result := scope.query(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return wrapErr("delete inventory item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
