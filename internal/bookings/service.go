package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	pkgerrors "github.com/mdewit/werkstatt-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the booking workflow.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*BookingView, error)
	SetStatus(ctx context.Context, id int64, input StatusInput) (*BookingView, error)
	Get(ctx context.Context, id int64) (*BookingView, error)
	List(ctx context.Context, search string) ([]BookingView, error)
	Statuses() []enums.BookingStatus
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds the bookings service.
func NewService(repo Repository, tx txRunner) Service {
	return &service{
		repo: repo,
		tx:   tx,
		now:  time.Now,
	}
}

// Create inserts the booking and, when an item id was supplied, reserves
// that item in the same transaction. A failed reservation rolls the
// booking insert back; the caller never gets a booking silently missing
// its requested part.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	var problems []string
	if strings.TrimSpace(input.CustomerName) == "" {
		problems = append(problems, "customer_name is required")
	}
	if strings.TrimSpace(input.DeviceModel) == "" {
		problems = append(problems, "device_model is required")
	}
	if strings.TrimSpace(input.ReportedIssue) == "" {
		problems = append(problems, "reported_issue is required")
	}
	if len(problems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking input").
			WithDetails(problems)
	}

	bookingDate := input.BookingDate.Time
	if bookingDate.IsZero() {
		bookingDate = s.now()
	}

	result := &CreateResult{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		booking := &models.Booking{
			BookingDate:   bookingDate,
			CustomerName:  strings.TrimSpace(input.CustomerName),
			CustomerPhone: input.CustomerPhone,
			DeviceModel:   strings.TrimSpace(input.DeviceModel),
			DeviceSerial:  input.DeviceSerial,
			GPCNumber:     input.GPCNumber,
			ZIRReference:  input.ZIRReference,
			ReportedIssue: strings.TrimSpace(input.ReportedIssue),
			Status:        enums.BookingStatusBookedIn,
			Notes:         input.Notes,
		}
		if err := txRepo.Create(ctx, booking); err != nil {
			return fmt.Errorf("creating booking: %w", err)
		}
		if booking.ID == 0 {
			return fmt.Errorf("booking id was not generated")
		}

		if input.InventoryItemID != nil {
			itemID := *input.InventoryItemID
			rows, err := txRepo.ReserveItem(ctx, itemID)
			if err != nil {
				return fmt.Errorf("reserving item: %w", err)
			}
			if rows == 0 {
				item, err := txRepo.FindItem(ctx, itemID)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound,
						fmt.Sprintf("inventory item %d not found", itemID))
				}
				if err != nil {
					return fmt.Errorf("loading item: %w", err)
				}
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("inventory item %d is %s, not Available", itemID, item.Status)).
					WithDetails(map[string]any{
						"inventory_item_id": itemID,
						"current_status":    item.Status,
					})
			}

			link := &models.BookingPartUsed{
				BookingID:       booking.ID,
				InventoryItemID: itemID,
			}
			if err := txRepo.LinkPart(ctx, link); err != nil {
				return fmt.Errorf("linking reserved item: %w", err)
			}
			result.ItemReserved = true
		}

		result.BookingID = booking.ID
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating booking")
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*BookingView, error) {
	var problems []string
	if strings.TrimSpace(input.CustomerName) == "" {
		problems = append(problems, "customer_name is required")
	}
	if strings.TrimSpace(input.DeviceModel) == "" {
		problems = append(problems, "device_model is required")
	}
	if strings.TrimSpace(input.ReportedIssue) == "" {
		problems = append(problems, "reported_issue is required")
	}
	status, err := enums.ParseBookingStatus(input.Status)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking input").
			WithDetails(problems)
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("booking %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking")
	}

	booking.CustomerName = strings.TrimSpace(input.CustomerName)
	booking.CustomerPhone = input.CustomerPhone
	booking.DeviceModel = strings.TrimSpace(input.DeviceModel)
	booking.DeviceSerial = input.DeviceSerial
	booking.GPCNumber = input.GPCNumber
	booking.ZIRReference = input.ZIRReference
	booking.ReportedIssue = strings.TrimSpace(input.ReportedIssue)
	booking.Status = status
	booking.Notes = input.Notes

	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving booking")
	}
	return s.Get(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, id int64, input StatusInput) (*BookingView, error) {
	status, err := enums.ParseBookingStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
			WithDetails(map[string]any{"allowed": enums.BookingStatuses()})
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("booking %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking")
	}

	booking.Status = status
	if input.Notes != nil {
		booking.Notes = input.Notes
	}
	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving booking status")
	}
	return s.Get(ctx, id)
}

func (s *service) Get(ctx context.Context, id int64) (*BookingView, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("booking %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking")
	}

	links, err := s.repo.PartsUsed(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading used parts")
	}

	view := bookingView(booking, s.now())
	view.PartsUsed = usedPartViews(links)
	return &view, nil
}

func (s *service) List(ctx context.Context, search string) ([]BookingView, error) {
	found, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bookings")
	}

	now := s.now()
	views := make([]BookingView, 0, len(found))
	for i := range found {
		views = append(views, bookingView(&found[i], now))
	}
	return views, nil
}

func (s *service) Statuses() []enums.BookingStatus {
	return enums.BookingStatuses()
}

func bookingView(booking *models.Booking, now time.Time) BookingView {
	return BookingView{
		ID:             booking.ID,
		BookingDate:    booking.BookingDate,
		CustomerName:   booking.CustomerName,
		CustomerPhone:  booking.CustomerPhone,
		DeviceModel:    booking.DeviceModel,
		DeviceSerial:   booking.DeviceSerial,
		GPCNumber:      booking.GPCNumber,
		ZIRReference:   booking.ZIRReference,
		ReportedIssue:  booking.ReportedIssue,
		Status:         booking.Status,
		Notes:          booking.Notes,
		LastUpdated:    booking.LastUpdated,
		MonthsInSystem: monthsInSystem(booking.BookingDate, now),
		PartsUsed:      []UsedPartView{},
	}
}

func usedPartViews(links []models.BookingPartUsed) []UsedPartView {
	views := make([]UsedPartView, 0, len(links))
	for _, link := range links {
		view := UsedPartView{InventoryItemID: link.InventoryItemID}
		if link.InventoryItem != nil {
			view.SerialNumber = link.InventoryItem.SerialNumber
			view.Status = link.InventoryItem.Status
			if link.InventoryItem.PartType != nil {
				view.PartName = link.InventoryItem.PartType.PartName
				view.PartNumber = link.InventoryItem.PartType.PartNumber
			}
		}
		views = append(views, view)
	}
	return views
}

// monthsInSystem is the calendar-aware month difference between the
// booking date and now: full years and months, minus one when the day of
// month has not been reached yet. Never negative.
func monthsInSystem(from, to time.Time) int {
	if from.IsZero() || from.After(to) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
