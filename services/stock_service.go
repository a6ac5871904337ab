package services

import (
	"errors"

	"mes-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StockOperationAdd    = "add"
	StockOperationReduce = "reduce"
)

type StockService struct {
	DB     *gorm.DB
	Mailer *MailService
}

func NewStockService(db *gorm.DB, mailer *MailService) *StockService {
	return &StockService{DB: db, Mailer: mailer}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// AdjustStock applies an add or reduce operation on a material's current
// stock. Adds are unconditional; a reduce larger than the current stock fails
// with ErrInsufficientStock and leaves the material untouched. Every applied
// change is appended to the stock history.
func (s *StockService) AdjustStock(materialID uint, stockChange int, operation, actor string) (*models.Material, error) {
	if operation != StockOperationAdd && operation != StockOperationReduce {
		return nil, ErrInvalidOperation
	}

	var material models.Material
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&material, materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		change := abs(stockChange)
		before := material.CurrentStock

		if operation == StockOperationAdd {
			material.CurrentStock += change
		} else {
			if material.CurrentStock < change {
				return ErrInsufficientStock
			}
			material.CurrentStock -= change
		}

		if err := tx.Save(&material).Error; err != nil {
			return err
		}

		history := models.StockHistory{
			MaterialID:  material.ID,
			Change:      change,
			Operation:   operation,
			StockBefore: before,
			StockAfter:  material.CurrentStock,
			Actor:       actor,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	if operation == StockOperationReduce && material.IsLowStock() && s.Mailer != nil {
		s.Mailer.SendLowStockAlert(&material)
	}

	return &material, nil
}

// LowStock lists materials under their safety stock, lowest first.
func (s *StockService) LowStock() ([]models.Material, error) {
	var materials []models.Material
	err := s.DB.Where("current_stock < safety_stock").
		Order("current_stock asc").
		Find(&materials).Error
	return materials, err
}
