package services_test

import (
	"errors"
	"testing"

	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"

	"gorm.io/gorm"
)

func createTestBomItem(t *testing.T, db *gorm.DB, perUnit, totalRequired, materialStock int) models.BomItem {
	t.Helper()

	project := models.Project{Code: "PRJ-BOM", Name: "Cabinet Batch", Customer: "PT Sentosa"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	item := models.ProjectItem{ProjectID: project.ID, Name: "Door Panel", QtySet: 1, Quantity: 10, Unit: "pcs"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create project item: %v", err)
	}
	material := models.Material{
		Code: "RAW-BOM-01", Name: "Steel Plate", Unit: "sheet",
		CurrentStock: materialStock, SafetyStock: 5, Category: models.MaterialCategoryRaw,
	}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}

	bomItem := models.BomItem{
		ItemID:          item.ID,
		MaterialID:      material.ID,
		QuantityPerUnit: perUnit,
		TotalRequired:   totalRequired,
	}
	if err := db.Create(&bomItem).Error; err != nil {
		t.Fatalf("failed to create bom item: %v", err)
	}
	return bomItem
}

func TestAllocateWithinRequirement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewBomService(db)
	bomItem := createTestBomItem(t, db, 2, 20, 100)

	updated, err := svc.Allocate(bomItem.ID, 15)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if updated.Allocated != 15 {
		t.Errorf("Allocated = %d, want 15", updated.Allocated)
	}

	if _, err := svc.Allocate(bomItem.ID, 5); err != nil {
		t.Fatalf("second Allocate failed: %v", err)
	}
}

func TestAllocateExceedsRequirement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewBomService(db)
	bomItem := createTestBomItem(t, db, 2, 20, 100)

	if _, err := svc.Allocate(bomItem.ID, 15); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if _, err := svc.Allocate(bomItem.ID, 6); !errors.Is(err, services.ErrExceedsRequirement) {
		t.Fatalf("expected ErrExceedsRequirement, got %v", err)
	}
}

func TestRealizeConsumesMaterial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewBomService(db)
	bomItem := createTestBomItem(t, db, 3, 20, 100)

	if _, err := svc.Allocate(bomItem.ID, 10); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	updated, err := svc.Realize(bomItem.ID, 4, "tester")
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	if updated.Realized != 4 {
		t.Errorf("Realized = %d, want 4", updated.Realized)
	}

	var material models.Material
	if err := db.First(&material, bomItem.MaterialID).Error; err != nil {
		t.Fatalf("failed to reload material: %v", err)
	}
	// 4 units * 3 per unit = 12 consumed from 100.
	if material.CurrentStock != 88 {
		t.Errorf("CurrentStock = %d, want 88", material.CurrentStock)
	}

	var history models.StockHistory
	if err := db.Where("material_id = ?", material.ID).First(&history).Error; err != nil {
		t.Fatalf("expected stock history row: %v", err)
	}
	if history.Change != 12 || history.Operation != services.StockOperationReduce {
		t.Errorf("history = %d (%s), want 12 (reduce)", history.Change, history.Operation)
	}
}

func TestRealizeExceedsAllocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewBomService(db)
	bomItem := createTestBomItem(t, db, 1, 20, 100)

	if _, err := svc.Allocate(bomItem.ID, 5); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if _, err := svc.Realize(bomItem.ID, 6, "tester"); !errors.Is(err, services.ErrExceedsAllocation) {
		t.Fatalf("expected ErrExceedsAllocation, got %v", err)
	}
}

func TestRealizeInsufficientMaterialStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewBomService(db)
	bomItem := createTestBomItem(t, db, 10, 20, 30)

	if _, err := svc.Allocate(bomItem.ID, 10); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	// 5 units * 10 per unit = 50 needed, only 30 in stock.
	if _, err := svc.Realize(bomItem.ID, 5, "tester"); !errors.Is(err, services.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var reloaded models.BomItem
	if err := db.First(&reloaded, bomItem.ID).Error; err != nil {
		t.Fatalf("failed to reload bom item: %v", err)
	}
	if reloaded.Realized != 0 {
		t.Errorf("Realized = %d, want unchanged 0", reloaded.Realized)
	}
}
