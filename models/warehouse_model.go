package models

import (
	"time"

	"gorm.io/gorm"
)

type FinishedGoodsWarehouse struct {
	gorm.Model
	ProjectID      uint    `json:"project_id"`
	Project        Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	ItemName       string  `json:"item_name"`
	TotalProduced  int     `json:"total_produced" gorm:"default:0"`
	ShippedQty     int     `json:"shipped_qty" gorm:"default:0"`
	AvailableStock int     `json:"available_stock" gorm:"default:0"`
	Unit           string  `json:"unit"`
	Status         string  `json:"status" gorm:"default:'not validate'"`
}

type DeliveryOrder struct {
	gorm.Model
	Code         string    `json:"code" gorm:"unique"`
	Date         time.Time `json:"date"`
	Customer     string    `json:"customer"`
	Address      string    `json:"address"`
	DriverName   string    `json:"driver_name"`
	VehiclePlate string    `json:"vehicle_plate"`
}

type DeliveryOrderItem struct {
	gorm.Model
	DeliveryOrderID uint                   `json:"delivery_order_id"`
	DeliveryOrder   DeliveryOrder          `json:"delivery_order,omitempty" gorm:"foreignKey:DeliveryOrderID;constraint:OnDelete:CASCADE"`
	WarehouseID     uint                   `json:"warehouse_id"`
	Warehouse       FinishedGoodsWarehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID;constraint:OnDelete:RESTRICT"`
	ProjectID       uint                   `json:"project_id"`
	Project         Project                `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	ProjectName     string                 `json:"project_name"`
	ItemName        string                 `json:"item_name"`
	Qty             int                    `json:"qty"`
	Unit            string                 `json:"unit"`
}
