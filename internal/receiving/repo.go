package receiving

import (
	"context"
	"strings"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence for the receiving workflow.
type Repository interface {
	// WithTx returns a copy of the repository bound to the transaction.
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.StockOrder) error
	CreateLine(ctx context.Context, line *models.StockOrderLine) error
	CreateItems(ctx context.Context, items []models.InventoryItem) error
	ExistingPartTypeIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	ListOrders(ctx context.Context, search string) ([]models.StockOrder, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a receiving repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.StockOrder) error {
	return r.db.WithContext(ctx).Omit("Lines").Create(order).Error
}

func (r *repository) CreateLine(ctx context.Context, line *models.StockOrderLine) error {
	return r.db.WithContext(ctx).Omit("PartType", "StockOrder").Create(line).Error
}

func (r *repository) CreateItems(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit("PartType", "StockOrderLine").
		CreateInBatches(items, 200).Error
}

func (r *repository) ExistingPartTypeIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	var found []int64
	err := r.db.WithContext(ctx).
		Model(&models.PartType{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[int64]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// ListOrders returns the receiving history, newest order first with lines in
// insertion order. A non-empty search matches case-insensitively against the
// order number and the part identifiers on any line.
func (r *repository) ListOrders(ctx context.Context, search string) ([]models.StockOrder, error) {
	query := r.db.WithContext(ctx).Model(&models.StockOrder{})

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		var matching []int64
		err := r.db.WithContext(ctx).
			Model(&models.StockOrder{}).
			Distinct("stock_orders.id").
			Joins("LEFT JOIN stock_order_lines ON stock_order_lines.stock_order_id = stock_orders.id").
			Joins("LEFT JOIN part_types ON part_types.id = stock_order_lines.part_type_id").
			Where(
				"LOWER(COALESCE(stock_orders.order_number, '')) LIKE ? OR LOWER(COALESCE(part_types.part_number, '')) LIKE ? OR LOWER(COALESCE(part_types.artikelnummer, '')) LIKE ?",
				pattern, pattern, pattern,
			).
			Pluck("stock_orders.id", &matching).Error
		if err != nil {
			return nil, err
		}
		if len(matching) == 0 {
			return []models.StockOrder{}, nil
		}
		query = query.Where("id IN ?", matching)
	}

	var orders []models.StockOrder
	err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Lines.PartType").
		Order("order_date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
