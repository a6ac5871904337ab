package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// ProcessList is the ordered set of process names a sub assembly goes through.
type ProcessList []string

func (p ProcessList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *ProcessList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("unsupported type for ProcessList")
}

type SubAssembly struct {
	gorm.Model
	ItemID       uint        `json:"item_id"`
	Item         ProjectItem `json:"item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Name         string      `json:"name"`
	QtyPerParent int         `json:"qty_per_parent" gorm:"default:0"`
	MaterialID   uint        `json:"material_id"`
	Material     Material    `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:RESTRICT"`
	Processes    ProcessList `json:"processes" gorm:"type:json"`
	TotalNeeded  int         `json:"total_needed" gorm:"default:0"`
	CompletedQty int         `json:"completed_qty" gorm:"default:0"`
}
