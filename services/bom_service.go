package services

import (
	"errors"

	"mes-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BomService struct {
	DB *gorm.DB
}

func NewBomService(db *gorm.DB) *BomService {
	return &BomService{DB: db}
}

// Allocate reserves qty units of the BOM line's requirement. The allocation
// may never exceed total_required.
func (s *BomService) Allocate(bomItemID uint, qty int) (*models.BomItem, error) {
	var bomItem models.BomItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bomItem, bomItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if bomItem.Allocated+qty > bomItem.TotalRequired {
			return ErrExceedsRequirement
		}

		bomItem.Allocated += qty
		return tx.Save(&bomItem).Error
	})
	if err != nil {
		return nil, err
	}
	return &bomItem, nil
}

// Realize consumes qty units of the allocation and draws the corresponding
// material quantity (qty * quantity_per_unit) from the material ledger, all in
// one transaction. Realization beyond the allocation, or past the material's
// current stock, is rejected and nothing changes.
func (s *BomService) Realize(bomItemID uint, qty int, actor string) (*models.BomItem, error) {
	var bomItem models.BomItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bomItem, bomItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if bomItem.Realized+qty > bomItem.Allocated {
			return ErrExceedsAllocation
		}

		var material models.Material
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&material, bomItem.MaterialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		consumed := qty * bomItem.QuantityPerUnit
		if material.CurrentStock < consumed {
			return ErrInsufficientStock
		}

		before := material.CurrentStock
		material.CurrentStock -= consumed
		bomItem.Realized += qty

		if err := tx.Save(&material).Error; err != nil {
			return err
		}
		if err := tx.Save(&bomItem).Error; err != nil {
			return err
		}

		history := models.StockHistory{
			MaterialID:  material.ID,
			Change:      consumed,
			Operation:   StockOperationReduce,
			StockBefore: before,
			StockAfter:  material.CurrentStock,
			Actor:       actor,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return &bomItem, nil
}
