package services_test

import (
	"errors"
	"testing"
	"time"

	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"

	"gorm.io/gorm"
)

func createTestWarehouseEntry(t *testing.T, db *gorm.DB) models.FinishedGoodsWarehouse {
	t.Helper()

	project := models.Project{Code: "PRJ-WH", Name: "Locker Batch", Customer: "PT Abadi"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	entry := models.FinishedGoodsWarehouse{
		ProjectID: project.ID,
		ItemName:  "Locker Door",
		Unit:      "pcs",
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to create warehouse entry: %v", err)
	}
	return entry
}

func TestProduceRaisesStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewWarehouseService(db)
	entry := createTestWarehouseEntry(t, db)

	updated, err := svc.Produce(entry.ID, 80)
	if err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	if updated.TotalProduced != 80 || updated.AvailableStock != 80 {
		t.Errorf("produced/available = %d/%d, want 80/80", updated.TotalProduced, updated.AvailableStock)
	}
}

func TestShipWithinAvailable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewWarehouseService(db)
	entry := createTestWarehouseEntry(t, db)

	if _, err := svc.Produce(entry.ID, 80); err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	updated, err := svc.Ship(entry.ID, 50)
	if err != nil {
		t.Fatalf("Ship failed: %v", err)
	}
	if updated.ShippedQty != 50 || updated.AvailableStock != 30 {
		t.Errorf("shipped/available = %d/%d, want 50/30", updated.ShippedQty, updated.AvailableStock)
	}
	if updated.TotalProduced != 80 {
		t.Errorf("TotalProduced = %d, want unchanged 80", updated.TotalProduced)
	}
}

func TestShipExceedsAvailable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewWarehouseService(db)
	entry := createTestWarehouseEntry(t, db)

	if _, err := svc.Produce(entry.ID, 80); err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	if _, err := svc.Ship(entry.ID, 90); !errors.Is(err, services.ErrInsufficientAvailable) {
		t.Fatalf("expected ErrInsufficientAvailable, got %v", err)
	}

	var reloaded models.FinishedGoodsWarehouse
	if err := db.First(&reloaded, entry.ID).Error; err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}
	if reloaded.AvailableStock != 80 || reloaded.ShippedQty != 0 {
		t.Errorf("available/shipped = %d/%d, want unchanged 80/0", reloaded.AvailableStock, reloaded.ShippedQty)
	}
}

func TestCreateDeliveryItemShipsStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewWarehouseService(db)
	entry := createTestWarehouseEntry(t, db)

	if _, err := svc.Produce(entry.ID, 40); err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	order := models.DeliveryOrder{Code: "DO-TEST-1", Date: time.Now(), Customer: "PT Abadi"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to create delivery order: %v", err)
	}

	item := models.DeliveryOrderItem{
		DeliveryOrderID: order.ID,
		WarehouseID:     entry.ID,
		Qty:             25,
	}
	if err := svc.CreateDeliveryItem(&item); err != nil {
		t.Fatalf("CreateDeliveryItem failed: %v", err)
	}
	if item.ItemName != "Locker Door" || item.Unit != "pcs" {
		t.Errorf("item fields not copied from warehouse entry: %q %q", item.ItemName, item.Unit)
	}

	var reloaded models.FinishedGoodsWarehouse
	if err := db.First(&reloaded, entry.ID).Error; err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}
	if reloaded.AvailableStock != 15 || reloaded.ShippedQty != 25 {
		t.Errorf("available/shipped = %d/%d, want 15/25", reloaded.AvailableStock, reloaded.ShippedQty)
	}
}

func TestDeleteDeliveryItemReturnsStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewWarehouseService(db)
	entry := createTestWarehouseEntry(t, db)

	if _, err := svc.Produce(entry.ID, 40); err != nil {
		t.Fatalf("Produce failed: %v", err)
	}
	order := models.DeliveryOrder{Code: "DO-TEST-2", Date: time.Now(), Customer: "PT Abadi"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to create delivery order: %v", err)
	}
	item := models.DeliveryOrderItem{DeliveryOrderID: order.ID, WarehouseID: entry.ID, Qty: 25}
	if err := svc.CreateDeliveryItem(&item); err != nil {
		t.Fatalf("CreateDeliveryItem failed: %v", err)
	}

	if err := svc.DeleteDeliveryItem(item.ID); err != nil {
		t.Fatalf("DeleteDeliveryItem failed: %v", err)
	}

	var reloaded models.FinishedGoodsWarehouse
	if err := db.First(&reloaded, entry.ID).Error; err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}
	if reloaded.AvailableStock != 40 || reloaded.ShippedQty != 0 {
		t.Errorf("available/shipped = %d/%d, want 40/0", reloaded.AvailableStock, reloaded.ShippedQty)
	}
}
