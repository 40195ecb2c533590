package inventory

import (
	"context"
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence for the inventory store.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]models.InventoryItem, error)
	ListByStatus(ctx context.Context, status enums.ItemStatus) ([]models.InventoryItem, error)
	FindByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	UpdateStatus(ctx context.Context, id int64, status enums.ItemStatus) (int64, error)
	HasOldStock(ctx context.Context, cutoff time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Joins("JOIN part_types ON part_types.id = inventory_items.part_type_id")

	if filter.Brand != "" {
		query = query.Where("part_types.brand = ?", filter.Brand)
	}
	if filter.Model != "" {
		query = query.Where("part_types.model = ?", filter.Model)
	}
	if filter.Category != "" {
		query = query.Where("part_types.part_type = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("inventory_items.status = ?", filter.Status)
	}

	var items []models.InventoryItem
	err := query.
		Preload("PartType").
		Preload("StockOrderLine").
		Preload("StockOrderLine.StockOrder").
		Order("part_types.brand, part_types.model, part_types.part_name, inventory_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByStatus(ctx context.Context, status enums.ItemStatus) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Joins("JOIN part_types ON part_types.id = inventory_items.part_type_id").
		Where("inventory_items.status = ?", status).
		Preload("PartType").
		Order("part_types.brand, part_types.model, part_types.part_name, inventory_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("PartType").
		Preload("StockOrderLine").
		Preload("StockOrderLine.StockOrder").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status enums.ItemStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"last_updated": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// HasOldStock reports whether any stock order older than the cutoff still
// has at least one linked item sitting in Available or Reserved.
func (r *repository) HasOldStock(ctx context.Context, cutoff time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StockOrder{}).
		Where("order_date < ?", cutoff).
		Where(`EXISTS (
			SELECT 1 FROM inventory_items
			JOIN stock_order_lines ON stock_order_lines.id = inventory_items.stock_order_line_id
			WHERE stock_order_lines.stock_order_id = stock_orders.id
			  AND inventory_items.status IN ?
		)`, []enums.ItemStatus{enums.ItemStatusAvailable, enums.ItemStatusReserved}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
