package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	pkgerrors "github.com/mdewit/werkstatt-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the inventory store operations: the filtered overview
// with its old stock alert, the available-items picker, and the direct
// status edit.
type Service interface {
	Overview(ctx context.Context, filter ListFilter) (*Overview, error)
	Available(ctx context.Context) ([]ItemView, error)
	Get(ctx context.Context, id int64) (*ItemView, error)
	SetStatus(ctx context.Context, id int64, input StatusUpdateInput) (*ItemView, error)
	Statuses() []enums.ItemStatus
}

type service struct {
	repo            Repository
	thresholdMonths int
	now             func() time.Time
}

// NewService builds the inventory service. thresholdMonths controls how
// far back the old stock alert looks.
func NewService(repo Repository, thresholdMonths int) Service {
	return &service{
		repo:            repo,
		thresholdMonths: thresholdMonths,
		now:             time.Now,
	}
}

func (s *service) Overview(ctx context.Context, filter ListFilter) (*Overview, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing inventory")
	}

	now := s.now()
	cutoff := now.AddDate(0, -s.thresholdMonths, 0)
	alert, err := s.repo.HasOldStock(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking old stock")
	}

	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, itemView(&items[i], now))
	}
	return &Overview{Items: views, OldStockAlert: alert}, nil
}

func (s *service) Available(ctx context.Context) ([]ItemView, error) {
	items, err := s.repo.ListByStatus(ctx, enums.ItemStatusAvailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing available items")
	}
	now := s.now()
	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, itemView(&items[i], now))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ItemView, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory item %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory item")
	}
	view := itemView(item, s.now())
	return &view, nil
}

func (s *service) SetStatus(ctx context.Context, id int64, input StatusUpdateInput) (*ItemView, error) {
	status, err := enums.ParseItemStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
			WithDetails(map[string]any{"allowed": enums.ItemStatuses()})
	}

	rows, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating item status")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory item %d not found", id))
	}
	return s.Get(ctx, id)
}

func (s *service) Statuses() []enums.ItemStatus {
	return enums.ItemStatuses()
}

func itemView(item *models.InventoryItem, now time.Time) ItemView {
	view := ItemView{
		ID:              item.ID,
		PartTypeID:      item.PartTypeID,
		SerialNumber:    item.SerialNumber,
		Status:          item.Status,
		CurrentLocation: item.CurrentLocation,
		Notes:           item.Notes,
		DateReceived:    item.DateReceived,
		LastUpdated:     item.LastUpdated,
		DaysInSystem:    daysInSystem(item.DateReceived, now),
	}
	if item.PartType != nil {
		view.PartName = item.PartType.PartName
		view.PartNumber = item.PartType.PartNumber
		view.Artikelnummer = item.PartType.Artikelnummer
		view.Brand = item.PartType.Brand
		view.Model = item.PartType.Model
		view.Category = item.PartType.Category
	}
	if item.StockOrderLine != nil && item.StockOrderLine.StockOrder != nil {
		view.OrderNumber = item.StockOrderLine.StockOrder.OrderNumber
	}
	return view
}

// daysInSystem is the whole-day age of an item, never negative, zero when
// the received date was never recorded.
func daysInSystem(received, now time.Time) int {
	if received.IsZero() || received.After(now) {
		return 0
	}
	return int(now.Sub(received).Hours() / 24)
}
