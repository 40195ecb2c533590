package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mdewit/werkstatt-backend/pkg/db"
	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	pkgerrors "github.com/mdewit/werkstatt-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the part type catalog operations.
type Service interface {
	Create(ctx context.Context, input PartTypeInput) (*models.PartType, error)
	Update(ctx context.Context, id int64, input PartTypeInput) (*models.PartType, error)
	Get(ctx context.Context, id int64) (*models.PartType, error)
	List(ctx context.Context) ([]models.PartType, error)
	FilterValues(ctx context.Context) (*FilterValues, error)
	Categories() []enums.PartCategory
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService builds the catalog service.
func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *service) Create(ctx context.Context, input PartTypeInput) (*models.PartType, error) {
	normalized, err := s.sanitize(input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, partTypeFromInput(normalized))
	if err != nil {
		return nil, s.mapWriteError(err, normalized)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input PartTypeInput) (*models.PartType, error) {
	normalized, err := s.sanitize(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("part type %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading part type")
	}

	updated := partTypeFromInput(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, s.mapWriteError(err, normalized)
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.PartType, error) {
	partType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("part type %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading part type")
	}
	return partType, nil
}

func (s *service) List(ctx context.Context) ([]models.PartType, error) {
	partTypes, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing part types")
	}
	return partTypes, nil
}

func (s *service) FilterValues(ctx context.Context) (*FilterValues, error) {
	values, err := s.repo.DistinctFilterValues(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading filter values")
	}
	return values, nil
}

func (s *service) Categories() []enums.PartCategory {
	return enums.PartCategories()
}

// sanitize trims every string field, drops blanks to nil, and collects all
// validation problems into one error instead of reporting only the first.
func (s *service) sanitize(input PartTypeInput) (PartTypeInput, error) {
	input.PartName = strings.TrimSpace(input.PartName)
	input.PartNumber = normalize(input.PartNumber)
	input.Artikelnummer = normalize(input.Artikelnummer)
	input.Category = normalize(input.Category)
	input.Brand = normalize(input.Brand)
	input.Model = normalize(input.Model)
	input.StorageLocation = normalize(input.StorageLocation)
	input.Description = normalize(input.Description)

	var problems []string
	if err := s.validate.Struct(input); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s is required", strings.ToLower(fieldErr.Field())))
			}
		} else {
			return input, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validating part type input")
		}
	}
	if input.CostPrice != nil && input.CostPrice.IsNegative() {
		problems = append(problems, "cost_price must not be negative")
	}

	if len(problems) > 0 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "invalid part type input").
			WithDetails(problems)
	}
	return input, nil
}

func (s *service) mapWriteError(err error, input PartTypeInput) error {
	column, ok := db.UniqueViolation(err)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving part type")
	}

	value := ""
	switch column {
	case "part_number":
		if input.PartNumber != nil {
			value = *input.PartNumber
		}
	case "artikelnummer":
		if input.Artikelnummer != nil {
			value = *input.Artikelnummer
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeConflict, err,
		fmt.Sprintf("%s %q is already in use", column, value)).
		WithDetails(map[string]string{"column": column, "value": value})
}

func partTypeFromInput(input PartTypeInput) *models.PartType {
	return &models.PartType{
		PartName:        input.PartName,
		PartNumber:      input.PartNumber,
		Artikelnummer:   input.Artikelnummer,
		Category:        input.Category,
		Brand:           input.Brand,
		Model:           input.Model,
		CostPrice:       input.CostPrice,
		StorageLocation: input.StorageLocation,
		Description:     input.Description,
	}
}

func normalize(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
