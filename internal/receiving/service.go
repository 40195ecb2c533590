package receiving

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	pkgerrors "github.com/mdewit/werkstatt-backend/pkg/errors"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Service exposes the receiving workflow: both entry variants funnel into
// the same atomic core that writes the order, its lines, and one inventory
// item row per received unit.
type Service interface {
	Receive(ctx context.Context, input ReceiveInput) (*Result, error)
	FastReceive(ctx context.Context, input FastReceiveInput) (*Result, error)
	ListOrders(ctx context.Context, search string) ([]OrderView, error)
}

// partResolver is the slice of the catalog needed to resolve free-text
// identifiers during fast receiving.
type partResolver interface {
	FindByIdentifier(ctx context.Context, identifier string) (*models.PartType, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo  Repository
	parts partResolver
	tx    txRunner
	now   func() time.Time
}

// NewService builds the receiving service.
func NewService(repo Repository, parts partResolver, tx txRunner) Service {
	return &service{
		repo:  repo,
		parts: parts,
		tx:    tx,
		now:   time.Now,
	}
}

func (s *service) Receive(ctx context.Context, input ReceiveInput) (*Result, error) {
	var problems []string
	var errs error
	effective := make([]ReceiveLine, 0, len(input.Lines))

	for i, line := range input.Lines {
		switch {
		case line.Quantity < 0:
			problem := fmt.Sprintf("line %d: quantity must not be negative", i+1)
			problems = append(problems, problem)
			errs = multierr.Append(errs, fmt.Errorf("%s", problem))
		case line.Quantity == 0:
			// skipped on purpose, blank form rows arrive as zero
		case line.PartTypeID <= 0:
			problem := fmt.Sprintf("line %d: part_type_id is required", i+1)
			problems = append(problems, problem)
			errs = multierr.Append(errs, fmt.Errorf("%s", problem))
		default:
			effective = append(effective, line)
		}
	}

	if len(problems) == 0 && len(effective) > 0 {
		ids := make([]int64, 0, len(effective))
		for _, line := range effective {
			ids = append(ids, line.PartTypeID)
		}
		existing, err := s.repo.ExistingPartTypeIDs(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking part types")
		}
		for i, line := range effective {
			if !existing[line.PartTypeID] {
				problem := fmt.Sprintf("line %d: part type %d does not exist", i+1, line.PartTypeID)
				problems = append(problems, problem)
				errs = multierr.Append(errs, fmt.Errorf("%s", problem))
			}
		}
	}

	if len(problems) > 0 {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid receiving input").
			WithDetails(problems)
	}
	if len(effective) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"at least one line with a positive quantity is required")
	}

	return s.receiveValidated(ctx, input.OrderNumber, input.OrderDate.Time, input.Notes, effective)
}

func (s *service) FastReceive(ctx context.Context, input FastReceiveInput) (*Result, error) {
	var problems []string
	var errs error
	resolved := make([]ReceiveLine, 0, len(input.Lines))

	fail := func(format string, args ...any) {
		problem := fmt.Sprintf(format, args...)
		problems = append(problems, problem)
		errs = multierr.Append(errs, fmt.Errorf("%s", problem))
	}

	for i, line := range input.Lines {
		identifier := strings.TrimSpace(line.Identifier)
		rawQty := strings.TrimSpace(line.Quantity)
		if identifier == "" {
			fail("line %d: identifier is required", i+1)
			continue
		}

		quantity, err := strconv.Atoi(rawQty)
		if err != nil {
			fail("line %d: quantity %q is not a whole number", i+1, rawQty)
			continue
		}
		if quantity <= 0 {
			fail("line %d: quantity must be positive", i+1)
			continue
		}

		partType, err := s.parts.FindByIdentifier(ctx, identifier)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fail("line %d: no part type matches %q", i+1, identifier)
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving part identifier")
		}
		resolved = append(resolved, ReceiveLine{PartTypeID: partType.ID, Quantity: quantity})
	}

	if len(problems) > 0 {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid fast receiving input").
			WithDetails(problems)
	}
	if len(resolved) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}

	return s.receiveValidated(ctx, input.OrderNumber, input.OrderDate.Time, input.Notes, resolved)
}

// receiveValidated is the atomic core. It writes the order, its lines, and
// the per-unit item rows in one transaction; any failure leaves nothing
// behind.
func (s *service) receiveValidated(ctx context.Context, orderNumber *string, orderDate time.Time, notes *string, lines []ReceiveLine) (*Result, error) {
	receivedAt := s.now()
	if orderDate.IsZero() {
		orderDate = receivedAt
	} else {
		// supplied dates arrive date-only, promote to midnight
		orderDate = time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day(),
			0, 0, 0, 0, orderDate.Location())
	}

	result := &Result{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order := &models.StockOrder{
			OrderNumber: orderNumber,
			OrderDate:   orderDate,
			Notes:       notes,
		}
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("creating stock order: %w", err)
		}
		if order.ID == 0 {
			return fmt.Errorf("stock order id was not generated")
		}

		for _, entry := range lines {
			line := &models.StockOrderLine{
				StockOrderID:     order.ID,
				PartTypeID:       entry.PartTypeID,
				QuantityReceived: entry.Quantity,
			}
			if err := txRepo.CreateLine(ctx, line); err != nil {
				return fmt.Errorf("creating order line: %w", err)
			}
			if line.ID == 0 {
				return fmt.Errorf("order line id was not generated")
			}

			items := make([]models.InventoryItem, entry.Quantity)
			for i := range items {
				items[i] = models.InventoryItem{
					PartTypeID:       entry.PartTypeID,
					Status:           enums.ItemStatusAvailable,
					StockOrderLineID: &line.ID,
					DateReceived:     receivedAt,
				}
			}
			if err := txRepo.CreateItems(ctx, items); err != nil {
				return fmt.Errorf("creating inventory items: %w", err)
			}
			result.ItemsCreated += entry.Quantity
		}

		result.StockOrderID = order.ID
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "receiving stock")
	}
	return result, nil
}

func (s *service) ListOrders(ctx context.Context, search string) ([]OrderView, error) {
	orders, err := s.repo.ListOrders(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stock orders")
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view := OrderView{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			OrderDate:   order.OrderDate,
			Notes:       order.Notes,
			Lines:       make([]OrderLineView, 0, len(order.Lines)),
		}
		for _, line := range order.Lines {
			lineView := OrderLineView{
				LineID:           line.ID,
				PartTypeID:       line.PartTypeID,
				QuantityReceived: line.QuantityReceived,
			}
			if line.PartType != nil {
				lineView.PartName = line.PartType.PartName
				lineView.PartNumber = line.PartType.PartNumber
				lineView.Artikelnummer = line.PartType.Artikelnummer
				lineView.Brand = line.PartType.Brand
				lineView.Model = line.PartType.Model
			}
			view.Lines = append(view.Lines, lineView)
		}
		views = append(views, view)
	}
	return views, nil
}
