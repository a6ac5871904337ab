package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectStatusPlanned    = "PLANNED"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusCompleted  = "COMPLETED"
	ProjectStatusOnHold     = "ON_HOLD"
	ProjectStatusCancelled  = "CANCELLED"
)

type Project struct {
	gorm.Model
	Code           string    `json:"code" gorm:"unique"`
	Name           string    `json:"name"`
	Customer       string    `json:"customer"`
	StartDate      time.Time `json:"start_date"`
	Deadline       time.Time `json:"deadline"`
	Status         string    `json:"status" gorm:"default:'PLANNED'"`
	Progress       int       `json:"progress" gorm:"default:0"`
	QtyPerUnit     int       `json:"qty_per_unit" gorm:"default:0"`
	ProcurementQty int       `json:"procurement_qty" gorm:"default:0"`
	TotalQty       int       `json:"total_qty" gorm:"default:0"`
	Unit           string    `json:"unit"`
	IsLocked       bool      `json:"is_locked" gorm:"default:false"`
}
