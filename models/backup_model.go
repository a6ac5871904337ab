package models

import "gorm.io/gorm"

const (
	BackupStatusPending   = "pending"
	BackupStatusCompleted = "completed"
	BackupStatusFailed    = "failed"
)

type Backup struct {
	gorm.Model
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	Disk      string `json:"disk" gorm:"default:'local'"`
	Status    string `json:"status" gorm:"default:'pending'"`
	Type      string `json:"type" gorm:"default:'full'"`
	Size      int64  `json:"size" gorm:"default:0"`
	CreatedBy string `json:"created_by"`
}
