package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// WorkflowStep is one named process step of a project item, in order.
type WorkflowStep struct {
	Step   string `json:"step"`
	Status string `json:"status"`
}

type WorkflowSteps []WorkflowStep

func (w WorkflowSteps) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

func (w *WorkflowSteps) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	}
	return errors.New("unsupported type for WorkflowSteps")
}

type ProjectItem struct {
	gorm.Model
	ProjectID        uint          `json:"project_id"`
	Project          Project       `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Name             string        `json:"name"`
	Dimensions       string        `json:"dimensions"`
	Thickness        string        `json:"thickness"`
	QtySet           int           `json:"qty_set" gorm:"default:0"`
	Quantity         int           `json:"quantity" gorm:"default:0"`
	Unit             string        `json:"unit"`
	Workflow         WorkflowSteps `json:"workflow" gorm:"type:json"`
	IsBomLocked      bool          `json:"is_bom_locked" gorm:"default:false"`
	IsWorkflowLocked bool          `json:"is_workflow_locked" gorm:"default:false"`
}
