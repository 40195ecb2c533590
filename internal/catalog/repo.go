package catalog

import (
	"context"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the part type catalog.
type Repository interface {
	Create(ctx context.Context, partType *models.PartType) (*models.PartType, error)
	Update(ctx context.Context, partType *models.PartType) error
	FindByID(ctx context.Context, id int64) (*models.PartType, error)
	FindByIdentifier(ctx context.Context, identifier string) (*models.PartType, error)
	List(ctx context.Context) ([]models.PartType, error)
	DistinctFilterValues(ctx context.Context) (*FilterValues, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, partType *models.PartType) (*models.PartType, error) {
	if err := r.db.WithContext(ctx).Create(partType).Error; err != nil {
		return nil, err
	}
	return partType, nil
}

func (r *repository) Update(ctx context.Context, partType *models.PartType) error {
	// Save writes every column so cleared optional fields are persisted as
	// NULL, matching the edit form's full-replace semantics.
	return r.db.WithContext(ctx).Save(partType).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.PartType, error) {
	var partType models.PartType
	err := r.db.WithContext(ctx).First(&partType, id).Error
	if err != nil {
		return nil, err
	}
	return &partType, nil
}

// FindByIdentifier resolves a free-text identifier by exact match on
// part_number or artikelnummer.
func (r *repository) FindByIdentifier(ctx context.Context, identifier string) (*models.PartType, error) {
	var partType models.PartType
	err := r.db.WithContext(ctx).
		Where("part_number = ? OR artikelnummer = ?", identifier, identifier).
		First(&partType).Error
	if err != nil {
		return nil, err
	}
	return &partType, nil
}

func (r *repository) List(ctx context.Context) ([]models.PartType, error) {
	var partTypes []models.PartType
	err := r.db.WithContext(ctx).
		Order("brand, model, part_name ASC").
		Find(&partTypes).Error
	if err != nil {
		return nil, err
	}
	return partTypes, nil
}

func (r *repository) DistinctFilterValues(ctx context.Context) (*FilterValues, error) {
	values := &FilterValues{
		Brands:     []string{},
		Models:     []string{},
		Categories: []string{},
	}

	columns := []struct {
		name string
		dest *[]string
	}{
		{"brand", &values.Brands},
		{"model", &values.Models},
		{"part_type", &values.Categories},
	}
	for _, col := range columns {
		err := r.db.WithContext(ctx).
			Model(&models.PartType{}).
			Distinct(col.name).
			Where(col.name+" IS NOT NULL AND "+col.name+" != ''").
			Order(col.name).
			Pluck(col.name, col.dest).Error
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}
