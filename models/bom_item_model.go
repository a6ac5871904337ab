package models

import "gorm.io/gorm"

type BomItem struct {
	gorm.Model
	ItemID          uint        `json:"item_id"`
	Item            ProjectItem `json:"item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	MaterialID      uint        `json:"material_id"`
	Material        Material    `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:RESTRICT"`
	QuantityPerUnit int         `json:"quantity_per_unit" gorm:"default:1"`
	TotalRequired   int         `json:"total_required" gorm:"default:1"`
	Allocated       int         `json:"allocated" gorm:"default:0"`
	Realized        int         `json:"realized" gorm:"default:0"`
}
