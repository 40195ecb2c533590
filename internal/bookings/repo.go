package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence for the booking workflow.
type Repository interface {
	// WithTx returns a copy of the repository bound to the transaction.
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, booking *models.Booking) error
	Save(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	List(ctx context.Context, search string) ([]models.Booking, error)

	// ReserveItem flips the item Available -> Reserved in one guarded
	// update and reports the matched row count; zero means the item was
	// missing or not Available.
	ReserveItem(ctx context.Context, itemID int64) (int64, error)
	FindItem(ctx context.Context, itemID int64) (*models.InventoryItem, error)
	LinkPart(ctx context.Context, link *models.BookingPartUsed) error
	PartsUsed(ctx context.Context, bookingID int64) ([]models.BookingPartUsed, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns bookings newest first. A non-empty search matches
// case-insensitively against customer name, device model, the booking id
// rendered as text, and the GPC/ZIR references.
func (r *repository) List(ctx context.Context, search string) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{})

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			`LOWER(customer_name) LIKE ?
			 OR LOWER(device_model) LIKE ?
			 OR CAST(id AS TEXT) LIKE ?
			 OR LOWER(COALESCE(gpc_number, '')) LIKE ?
			 OR LOWER(COALESCE(zir_reference, '')) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var bookingsList []models.Booking
	err := query.Order("booking_date DESC, id DESC").Find(&bookingsList).Error
	if err != nil {
		return nil, err
	}
	return bookingsList, nil
}

func (r *repository) ReserveItem(ctx context.Context, itemID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND status = ?", itemID, enums.ItemStatusAvailable).
		Updates(map[string]any{
			"status":       enums.ItemStatusReserved,
			"last_updated": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) FindItem(ctx context.Context, itemID int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) LinkPart(ctx context.Context, link *models.BookingPartUsed) error {
	return r.db.WithContext(ctx).
		Omit("Booking", "InventoryItem").
		Create(link).Error
}

func (r *repository) PartsUsed(ctx context.Context, bookingID int64) ([]models.BookingPartUsed, error) {
	var links []models.BookingPartUsed
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Preload("InventoryItem").
		Preload("InventoryItem.PartType").
		Order("inventory_item_id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
