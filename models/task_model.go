package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusPaused     = "PAUSED"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusDowntime   = "DOWNTIME"
)

var TaskStatuses = []string{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusPaused,
	TaskStatusCompleted,
	TaskStatusDowntime,
}

type Task struct {
	gorm.Model
	ProjectID            uint        `json:"project_id"`
	Project              Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	ProjectName          string      `json:"project_name"`
	ItemID               uint        `json:"item_id"`
	ProjectItem          ProjectItem `json:"project_item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	ItemName             string      `json:"item_name"`
	Step                 string      `json:"step"`
	MachineID            uint        `json:"machine_id"`
	Machine              Machine     `json:"machine,omitempty" gorm:"foreignKey:MachineID;constraint:OnDelete:RESTRICT"`
	TargetQty            int         `json:"target_qty"`
	CompletedQty         int         `json:"completed_qty" gorm:"default:0"`
	DefectQty            int         `json:"defect_qty" gorm:"default:0"`
	Shift                string      `json:"shift"`
	Status               string      `json:"status" gorm:"default:'PENDING'"`
	DowntimeStart        *time.Time  `json:"downtime_start"`
	TotalDowntimeMinutes int         `json:"total_downtime_minutes" gorm:"default:0"`
}

// TaskStatistics is the per-status breakdown returned by the statistics endpoint.
type TaskStatistics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Paused     int64 `json:"paused"`
	Downtime   int64 `json:"downtime"`
	Completed  int64 `json:"completed"`
}
