package services_test

import (
	"errors"
	"testing"

	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"

	"gorm.io/gorm"
)

func createTestMaterial(t *testing.T, db *gorm.DB, stock, safety int) models.Material {
	t.Helper()
	material := models.Material{
		Code:         "RAW-TST-01",
		Name:         "Steel Plate Test",
		Unit:         "sheet",
		CurrentStock: stock,
		SafetyStock:  safety,
		Category:     models.MaterialCategoryRaw,
	}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	return material
}

func TestAdjustStockAdd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewStockService(db, nil)
	material := createTestMaterial(t, db, 100, 20)

	updated, err := svc.AdjustStock(material.ID, 50, services.StockOperationAdd, "tester")
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if updated.CurrentStock != 150 {
		t.Errorf("CurrentStock = %d, want 150", updated.CurrentStock)
	}

	var history models.StockHistory
	if err := db.Where("material_id = ?", material.ID).First(&history).Error; err != nil {
		t.Fatalf("expected stock history row: %v", err)
	}
	if history.StockBefore != 100 || history.StockAfter != 150 || history.Operation != services.StockOperationAdd {
		t.Errorf("history = %d -> %d (%s), want 100 -> 150 (add)", history.StockBefore, history.StockAfter, history.Operation)
	}
}

func TestAdjustStockReduce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewStockService(db, nil)
	material := createTestMaterial(t, db, 100, 20)

	updated, err := svc.AdjustStock(material.ID, 90, services.StockOperationReduce, "tester")
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if updated.CurrentStock != 10 {
		t.Errorf("CurrentStock = %d, want 10", updated.CurrentStock)
	}
	if !updated.IsLowStock() {
		t.Errorf("material should be below safety stock after the reduce")
	}
}

func TestAdjustStockReduceInsufficient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewStockService(db, nil)
	material := createTestMaterial(t, db, 10, 5)

	_, err := svc.AdjustStock(material.ID, 20, services.StockOperationReduce, "tester")
	if !errors.Is(err, services.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var reloaded models.Material
	if err := db.First(&reloaded, material.ID).Error; err != nil {
		t.Fatalf("failed to reload material: %v", err)
	}
	if reloaded.CurrentStock != 10 {
		t.Errorf("CurrentStock = %d, want unchanged 10", reloaded.CurrentStock)
	}

	var count int64
	db.Model(&models.StockHistory{}).Where("material_id = ?", material.ID).Count(&count)
	if count != 0 {
		t.Errorf("failed reduce must not write history, got %d rows", count)
	}
}

func TestAdjustStockNegativeChangeIsAbsolute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewStockService(db, nil)
	material := createTestMaterial(t, db, 100, 20)

	updated, err := svc.AdjustStock(material.ID, -30, services.StockOperationReduce, "tester")
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if updated.CurrentStock != 70 {
		t.Errorf("CurrentStock = %d, want 70", updated.CurrentStock)
	}
}

func TestAdjustStockInvalidOperation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewStockService(db, nil)
	material := createTestMaterial(t, db, 100, 20)

	if _, err := svc.AdjustStock(material.ID, 10, "transfer", "tester"); !errors.Is(err, services.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestLowStockOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewStockService(db, nil)

	rows := []models.Material{
		{Code: "M-A", Name: "A", Unit: "pcs", CurrentStock: 5, SafetyStock: 10},
		{Code: "M-B", Name: "B", Unit: "pcs", CurrentStock: 2, SafetyStock: 10},
		{Code: "M-C", Name: "C", Unit: "pcs", CurrentStock: 50, SafetyStock: 10},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to create material: %v", err)
		}
	}

	low, err := svc.LowStock()
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("len(low) = %d, want 2", len(low))
	}
	if low[0].Code != "M-B" || low[1].Code != "M-A" {
		t.Errorf("ordering = %s, %s; want M-B, M-A", low[0].Code, low[1].Code)
	}
}
