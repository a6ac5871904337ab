package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

const (
	MachineStatusIdle        = "IDLE"
	MachineStatusRunning     = "RUNNING"
	MachineStatusMaintenance = "MAINTENANCE"
	MachineStatusOffline     = "OFFLINE"
	MachineStatusDowntime    = "DOWNTIME"
)

var MachineTypes = []string{"POTONG", "PLONG", "PRESS", "LASPEN", "LAS_MIG", "PHOSPATHING", "POWDER", "PACKING"}

var MachineStatuses = []string{
	MachineStatusIdle,
	MachineStatusRunning,
	MachineStatusMaintenance,
	MachineStatusOffline,
	MachineStatusDowntime,
}

// Personnel is one crew member assigned to a machine.
type Personnel struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type PersonnelList []Personnel

func (p PersonnelList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PersonnelList) Scan(value interface{}) error {
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
	return errors.New("unsupported type for PersonnelList")
}

type Machine struct {
	gorm.Model
	Code            string        `json:"code" gorm:"unique"`
	Name            string        `json:"name"`
	Type            string        `json:"type"`
	CapacityPerHour int           `json:"capacity_per_hour" gorm:"default:0"`
	Status          string        `json:"status" gorm:"default:'IDLE'"`
	Personnel       PersonnelList `json:"personnel" gorm:"type:json"`
	IsMaintenance   bool          `json:"is_maintenance" gorm:"default:false"`
}
