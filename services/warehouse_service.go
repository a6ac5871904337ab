package services

import (
	"errors"

	"mes-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WarehouseService struct {
	DB *gorm.DB
}

func NewWarehouseService(db *gorm.DB) *WarehouseService {
	return &WarehouseService{DB: db}
}

// Produce books qty finished units into the warehouse entry, raising both the
// produced total and the available stock.
func (s *WarehouseService) Produce(warehouseID uint, qty int) (*models.FinishedGoodsWarehouse, error) {
	var entry models.FinishedGoodsWarehouse
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, warehouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		entry.TotalProduced += qty
		entry.AvailableStock += qty
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Ship moves qty units out of the available stock. Shipping more than is
// available fails and leaves the entry untouched.
func (s *WarehouseService) Ship(warehouseID uint, qty int) (*models.FinishedGoodsWarehouse, error) {
	var entry models.FinishedGoodsWarehouse
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.shipTx(tx, &entry, warehouseID, qty)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// shipTx applies a shipment inside an existing transaction so that delivery
// order items and warehouse stock move together or not at all.
func (s *WarehouseService) shipTx(tx *gorm.DB, entry *models.FinishedGoodsWarehouse, warehouseID uint, qty int) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(entry, warehouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if qty > entry.AvailableStock {
		return ErrInsufficientAvailable
	}

	entry.ShippedQty += qty
	entry.AvailableStock -= qty
	return tx.Save(entry).Error
}

// CreateDeliveryItem records a delivery order line and ships the quantity from
// the referenced warehouse entry in the same transaction.
func (s *WarehouseService) CreateDeliveryItem(item *models.DeliveryOrderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.DeliveryOrder
		if err := tx.First(&order, item.DeliveryOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var entry models.FinishedGoodsWarehouse
		if err := s.shipTx(tx, &entry, item.WarehouseID, item.Qty); err != nil {
			return err
		}

		item.ProjectID = entry.ProjectID
		item.ItemName = entry.ItemName
		item.Unit = entry.Unit
		return tx.Create(item).Error
	})
}

// DeleteDeliveryItem removes a delivery order line and returns its quantity to
// the warehouse entry.
func (s *WarehouseService) DeleteDeliveryItem(itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.DeliveryOrderItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var entry models.FinishedGoodsWarehouse
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, item.WarehouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		entry.ShippedQty -= item.Qty
		entry.AvailableStock += item.Qty
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		return tx.Delete(&item).Error
	})
}
