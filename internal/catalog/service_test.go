package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	pkgerrors "github.com/mdewit/werkstatt-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.PartType{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewRepository(conn)), conn
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetPartType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	price := decimal.NewFromFloat(34.50)
	created, err := svc.Create(ctx, PartTypeInput{
		PartName:   "Display Assembly",
		PartNumber: strPtr("GH82-25224A"),
		Brand:      strPtr("Samsung"),
		Model:      strPtr("Galaxy S21"),
		Category:   strPtr("Screen"),
		CostPrice:  &price,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	loaded, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.PartName != "Display Assembly" || *loaded.PartNumber != "GH82-25224A" {
		t.Fatalf("unexpected part type: %+v", loaded)
	}
	if !loaded.CostPrice.Equal(price) {
		t.Fatalf("expected cost price %s, got %s", price, loaded.CostPrice)
	}
}

func TestCreateNormalizesBlankOptionalFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), PartTypeInput{
		PartName:      "  Battery  ",
		PartNumber:    strPtr("   "),
		Artikelnummer: strPtr(""),
		Brand:         strPtr(" Apple "),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PartName != "Battery" {
		t.Fatalf("expected trimmed name, got %q", created.PartName)
	}
	if created.PartNumber != nil || created.Artikelnummer != nil {
		t.Fatal("blank identifiers should be stored as NULL")
	}
	if created.Brand == nil || *created.Brand != "Apple" {
		t.Fatalf("expected trimmed brand, got %v", created.Brand)
	}
}

func TestCreateRejectsMissingNameAndNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)

	negative := decimal.NewFromInt(-1)
	_, err := svc.Create(context.Background(), PartTypeInput{
		PartName:  "   ",
		CostPrice: &negative,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	problems, ok := typed.Details().([]string)
	if !ok || len(problems) != 2 {
		t.Fatalf("expected both problems reported, got %v", typed.Details())
	}
}

func TestCreateDuplicatePartNumberNamesColumn(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, PartTypeInput{PartName: "Screen", PartNumber: strPtr("PN-1")}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(ctx, PartTypeInput{PartName: "Other Screen", PartNumber: strPtr("PN-1")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["column"] != "part_number" || details["value"] != "PN-1" {
		t.Fatalf("expected conflict details naming part_number, got %v", typed.Details())
	}
}

func TestDuplicateArtikelnummerNamesColumn(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, PartTypeInput{PartName: "Screen", Artikelnummer: strPtr("ART-9")}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(ctx, PartTypeInput{PartName: "Other", Artikelnummer: strPtr("ART-9")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if details["column"] != "artikelnummer" {
		t.Fatalf("expected artikelnummer conflict, got %v", details)
	}
}

func TestUpdateUnknownPartTypeIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 9999, PartTypeInput{PartName: "Anything"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateReplacesAllFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, PartTypeInput{
		PartName: "Screen",
		Brand:    strPtr("Samsung"),
		Model:    strPtr("A52"),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, PartTypeInput{
		PartName: "Screen OLED",
		Brand:    strPtr("Samsung"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PartName != "Screen OLED" {
		t.Fatalf("expected renamed part, got %q", updated.PartName)
	}

	loaded, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Model != nil {
		t.Fatal("cleared model should be NULL after full-replace update")
	}
}

func TestFindByIdentifierMatchesEitherColumn(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	repo := NewRepository(conn)

	if _, err := svc.Create(ctx, PartTypeInput{PartName: "Screen", PartNumber: strPtr("PN-7")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(ctx, PartTypeInput{PartName: "Battery", Artikelnummer: strPtr("ART-3")}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	byPartNumber, err := repo.FindByIdentifier(ctx, "PN-7")
	if err != nil || byPartNumber.PartName != "Screen" {
		t.Fatalf("lookup by part number failed: %v %+v", err, byPartNumber)
	}
	byArtikel, err := repo.FindByIdentifier(ctx, "ART-3")
	if err != nil || byArtikel.PartName != "Battery" {
		t.Fatalf("lookup by artikelnummer failed: %v %+v", err, byArtikel)
	}
	if _, err := repo.FindByIdentifier(ctx, "NOPE"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestFilterValuesAreDistinctAndSorted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seeds := []PartTypeInput{
		{PartName: "Screen A", Brand: strPtr("Samsung"), Model: strPtr("S21"), Category: strPtr("Screen")},
		{PartName: "Screen B", Brand: strPtr("Samsung"), Model: strPtr("S22"), Category: strPtr("Screen")},
		{PartName: "Battery", Brand: strPtr("Apple"), Category: strPtr("Battery")},
		{PartName: "Tape", Brand: strPtr("")},
	}
	for _, seed := range seeds {
		if _, err := svc.Create(ctx, seed); err != nil {
			t.Fatalf("seed %q: %v", seed.PartName, err)
		}
	}

	values, err := svc.FilterValues(ctx)
	if err != nil {
		t.Fatalf("filter values: %v", err)
	}
	if len(values.Brands) != 2 || values.Brands[0] != "Apple" || values.Brands[1] != "Samsung" {
		t.Fatalf("unexpected brands: %v", values.Brands)
	}
	if len(values.Models) != 2 {
		t.Fatalf("unexpected models: %v", values.Models)
	}
	if len(values.Categories) != 2 || values.Categories[0] != "Battery" {
		t.Fatalf("unexpected categories: %v", values.Categories)
	}
}
