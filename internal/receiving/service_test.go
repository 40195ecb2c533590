package receiving

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mdewit/werkstatt-backend/internal/catalog"
	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	pkgerrors "github.com/mdewit/werkstatt-backend/pkg/errors"
	"github.com/mdewit/werkstatt-backend/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTx struct{ db *gorm.DB }

func (g gormTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:receiving_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = conn.AutoMigrate(
		&models.PartType{}, &models.StockOrder{},
		&models.StockOrderLine{}, &models.InventoryItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := NewService(NewRepository(conn), catalog.NewRepository(conn), gormTx{db: conn})
	return svc, conn
}

func seedPartType(t *testing.T, conn *gorm.DB, name string, partNumber, artikelnummer *string) *models.PartType {
	t.Helper()
	partType := &models.PartType{
		PartName:      name,
		PartNumber:    partNumber,
		Artikelnummer: artikelnummer,
	}
	if err := conn.Create(partType).Error; err != nil {
		t.Fatalf("seed part type %s: %v", name, err)
	}
	return partType
}

func strPtr(s string) *string { return &s }

func countRows(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestReceiveCreatesOneItemPerUnit(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	screen := seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)
	battery := seedPartType(t, conn, "Battery", strPtr("PN-2"), nil)

	result, err := svc.Receive(ctx, ReceiveInput{
		OrderNumber: strPtr("PO-100"),
		Lines: []ReceiveLine{
			{PartTypeID: screen.ID, Quantity: 3},
			{PartTypeID: battery.ID, Quantity: 2},
			{PartTypeID: screen.ID, Quantity: 0},
		},
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if result.ItemsCreated != 5 {
		t.Fatalf("expected 5 items created, got %d", result.ItemsCreated)
	}
	if result.StockOrderID == 0 {
		t.Fatal("expected stock order id in result")
	}

	if got := countRows(t, conn, &models.StockOrder{}); got != 1 {
		t.Fatalf("expected 1 order, got %d", got)
	}
	if got := countRows(t, conn, &models.StockOrderLine{}); got != 2 {
		t.Fatalf("zero-quantity line should be skipped, got %d lines", got)
	}

	var items []models.InventoryItem
	if err := conn.Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 item rows, got %d", len(items))
	}
	lineCounts := map[int64]int{}
	for _, item := range items {
		if item.Status != enums.ItemStatusAvailable {
			t.Fatalf("expected Available, got %s", item.Status)
		}
		if item.StockOrderLineID == nil {
			t.Fatal("item missing stock order line link")
		}
		lineCounts[*item.StockOrderLineID]++
	}
	if len(lineCounts) != 2 {
		t.Fatalf("expected items spread over 2 lines, got %v", lineCounts)
	}
}

func TestReceiveNegativeQuantityCreatesNothing(t *testing.T) {
	svc, conn := newTestService(t)
	screen := seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)

	_, err := svc.Receive(context.Background(), ReceiveInput{
		Lines: []ReceiveLine{
			{PartTypeID: screen.ID, Quantity: 3},
			{PartTypeID: screen.ID, Quantity: -1},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := countRows(t, conn, &models.StockOrder{}); got != 0 {
		t.Fatalf("expected zero orders, got %d", got)
	}
	if got := countRows(t, conn, &models.InventoryItem{}); got != 0 {
		t.Fatalf("expected zero items, got %d", got)
	}
}

func TestReceiveUnknownPartTypeReportsLine(t *testing.T) {
	svc, conn := newTestService(t)
	screen := seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)

	_, err := svc.Receive(context.Background(), ReceiveInput{
		Lines: []ReceiveLine{
			{PartTypeID: screen.ID, Quantity: 1},
			{PartTypeID: 4242, Quantity: 2},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	problems, ok := typed.Details().([]string)
	if !ok || len(problems) != 1 {
		t.Fatalf("expected one problem, got %v", typed.Details())
	}
	if got := countRows(t, conn, &models.InventoryItem{}); got != 0 {
		t.Fatalf("expected zero items, got %d", got)
	}
}

func TestReceiveWithOnlyZeroQuantitiesIsRejected(t *testing.T) {
	svc, conn := newTestService(t)
	screen := seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)

	_, err := svc.Receive(context.Background(), ReceiveInput{
		Lines: []ReceiveLine{{PartTypeID: screen.ID, Quantity: 0}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReceivePromotesOrderDateToMidnight(t *testing.T) {
	svc, conn := newTestService(t)
	screen := seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)

	supplied := time.Date(2026, 5, 10, 15, 4, 5, 0, time.UTC)
	result, err := svc.Receive(context.Background(), ReceiveInput{
		OrderDate: types.Date{Time: supplied},
		Lines:     []ReceiveLine{{PartTypeID: screen.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	var order models.StockOrder
	if err := conn.First(&order, result.StockOrderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	want := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	if !order.OrderDate.Equal(want) {
		t.Fatalf("expected order date %s, got %s", want, order.OrderDate)
	}
}

func TestFastReceiveResolvesIdentifiers(t *testing.T) {
	svc, conn := newTestService(t)
	seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)
	seedPartType(t, conn, "Battery", nil, strPtr("ART-9"))

	result, err := svc.FastReceive(context.Background(), FastReceiveInput{
		OrderNumber: strPtr("PO-100"),
		Lines: []FastReceiveLine{
			{Identifier: "PN-1", Quantity: "3"},
			{Identifier: "ART-9", Quantity: "2"},
		},
	})
	if err != nil {
		t.Fatalf("fast receive: %v", err)
	}
	if result.ItemsCreated != 5 {
		t.Fatalf("expected 5 items, got %d", result.ItemsCreated)
	}
	if got := countRows(t, conn, &models.InventoryItem{}); got != 5 {
		t.Fatalf("expected 5 item rows, got %d", got)
	}
}

func TestFastReceiveBlankRowIsReported(t *testing.T) {
	svc, conn := newTestService(t)
	seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)

	_, err := svc.FastReceive(context.Background(), FastReceiveInput{
		Lines: []FastReceiveLine{
			{Identifier: "PN-1", Quantity: "2"},
			{Identifier: "", Quantity: ""},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	problems, ok := typed.Details().([]string)
	if !ok || len(problems) != 1 {
		t.Fatalf("expected the blank row reported, got %v", typed.Details())
	}
	if got := countRows(t, conn, &models.StockOrder{}); got != 0 {
		t.Fatalf("expected zero orders, got %d", got)
	}
}

func TestFastReceiveCollectsAllLineErrors(t *testing.T) {
	svc, conn := newTestService(t)
	seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)

	_, err := svc.FastReceive(context.Background(), FastReceiveInput{
		Lines: []FastReceiveLine{
			{Identifier: "PN-1", Quantity: "three"},
			{Identifier: "UNKNOWN-1", Quantity: "2"},
			{Identifier: "", Quantity: "4"},
			{Identifier: "PN-1", Quantity: "0"},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	problems, ok := typed.Details().([]string)
	if !ok || len(problems) != 4 {
		t.Fatalf("expected all 4 line problems reported, got %v", typed.Details())
	}
	if got := countRows(t, conn, &models.StockOrder{}); got != 0 {
		t.Fatalf("expected zero orders, got %d", got)
	}
	if got := countRows(t, conn, &models.InventoryItem{}); got != 0 {
		t.Fatalf("expected zero items, got %d", got)
	}
}

func TestListOrdersSearchesIdentifiersCaseInsensitively(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	screen := seedPartType(t, conn, "Screen", strPtr("PN-1"), nil)
	battery := seedPartType(t, conn, "Battery", nil, strPtr("ART-9"))

	first, err := svc.Receive(ctx, ReceiveInput{
		OrderNumber: strPtr("PO-OLD"),
		OrderDate:   types.Date{Time: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		Lines:       []ReceiveLine{{PartTypeID: screen.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	second, err := svc.Receive(ctx, ReceiveInput{
		OrderNumber: strPtr("PO-NEW"),
		OrderDate:   types.Date{Time: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		Lines:       []ReceiveLine{{PartTypeID: battery.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	all, err := svc.ListOrders(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
	if all[0].ID != second.StockOrderID || all[1].ID != first.StockOrderID {
		t.Fatalf("expected newest order first, got %d then %d", all[0].ID, all[1].ID)
	}
	if all[0].Lines[0].PartName != "Battery" {
		t.Fatalf("expected joined part info, got %+v", all[0].Lines[0])
	}

	matched, err := svc.ListOrders(ctx, "art-9")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != second.StockOrderID {
		t.Fatalf("expected artikelnummer search to match one order, got %d", len(matched))
	}

	matched, err = svc.ListOrders(ctx, "po-old")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != first.StockOrderID {
		t.Fatalf("expected order number search to match one order, got %d", len(matched))
	}

	matched, err = svc.ListOrders(ctx, "no-such-thing")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matched) != 0 {
		t.Fatalf("expected no matches, got %d", len(matched))
	}
}
