package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	LogTypeOutput        = "OUTPUT"
	LogTypeDowntimeStart = "DOWNTIME_START"
	LogTypeDowntimeEnd   = "DOWNTIME_END"
)

var LogTypes = []string{LogTypeOutput, LogTypeDowntimeStart, LogTypeDowntimeEnd}

type ProductionLog struct {
	gorm.Model
	TaskID    uint        `json:"task_id"`
	Task      Task        `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	MachineID uint        `json:"machine_id"`
	Machine   Machine     `json:"machine,omitempty" gorm:"foreignKey:MachineID;constraint:OnDelete:RESTRICT"`
	ItemID    uint        `json:"item_id"`
	Item      ProjectItem `json:"item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	ProjectID uint        `json:"project_id"`
	Project   Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Step      string      `json:"step"`
	Shift     string      `json:"shift"`
	GoodQty   int         `json:"good_qty" gorm:"default:0"`
	DefectQty int         `json:"defect_qty" gorm:"default:0"`
	Operator  string      `json:"operator"`
	LoggedAt  time.Time   `json:"logged_at"`
	Type      string      `json:"type"`
}

// ProductionSummary aggregates output over a filtered set of logs.
type ProductionSummary struct {
	TotalGoodQty   int64   `json:"total_good_qty"`
	TotalDefectQty int64   `json:"total_defect_qty"`
	TotalLogs      int64   `json:"total_logs"`
	AvgGoodQty     float64 `json:"avg_good_qty"`
	AvgDefectQty   float64 `json:"avg_defect_qty"`
}
