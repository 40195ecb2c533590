package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/db/models"
	"github.com/mdewit/werkstatt-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:client_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.PartType{}, &models.InventoryItem{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	conn := newTestDB(t)
	client := &Client{conn: conn}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.PartType{PartName: "iPhone 12 screen"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := conn.Model(&models.PartType{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.PartType{PartName: "rolled back"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := conn.Model(&models.PartType{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWithTx_RollsBackMultiTableWrites(t *testing.T) {
	conn := newTestDB(t)
	client := &Client{conn: conn}

	part := models.PartType{PartName: "battery"}
	if err := conn.Create(&part).Error; err != nil {
		t.Fatalf("seed part type: %v", err)
	}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		item := models.InventoryItem{
			PartTypeID:   part.ID,
			Status:       enums.ItemStatusAvailable,
			DateReceived: time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return errors.New("abort after item insert")
	})
	if err == nil {
		t.Fatal("expected error from WithTx")
	}

	var items int64
	if err := conn.Model(&models.InventoryItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 0 {
		t.Fatalf("expected no items after rollback, got %d", items)
	}
}

func TestPing(t *testing.T) {
	conn := newTestDB(t)
	client := &Client{conn: conn}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestSQLiteDSNForcesForeignKeys(t *testing.T) {
	cases := map[string]string{
		"file:shop.db":                  "file:shop.db?_foreign_keys=on",
		"file:shop.db?cache=shared":     "file:shop.db?cache=shared&_foreign_keys=on",
		"file:shop.db?_foreign_keys=on": "file:shop.db?_foreign_keys=on",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Fatalf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}
