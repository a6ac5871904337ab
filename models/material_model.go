package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MaterialCategoryRaw       = "RAW"
	MaterialCategoryFinishing = "FINISHING"
	MaterialCategoryHardware  = "HARDWARE"
)

type Material struct {
	gorm.Model
	Code         string          `json:"code" gorm:"unique"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock int             `json:"current_stock" gorm:"default:0"`
	SafetyStock  int             `json:"safety_stock" gorm:"default:0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" gorm:"type:decimal(15,2)"`
	Category     string          `json:"category"`
}

func (m *Material) IsLowStock() bool {
	return m.CurrentStock < m.SafetyStock
}

// StockHistory records every stock mutation on a material.
type StockHistory struct {
	gorm.Model
	MaterialID  uint   `json:"material_id"`
	Change      int    `json:"change"`
	Operation   string `json:"operation"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Actor       string `json:"actor"`
}
