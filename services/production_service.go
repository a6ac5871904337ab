package services

import (
	"errors"
	"time"

	"mes-app/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionLogService struct {
	DB *gorm.DB
}

func NewProductionLogService(db *gorm.DB) *ProductionLogService {
	return &ProductionLogService{DB: db}
}

// ProductionLogFilter narrows listings and summaries. Zero values mean "no
// filter" for that field.
type ProductionLogFilter struct {
	ProjectID uint
	MachineID uint
	TaskID    uint
	Type      string
	Shift     string
	DateFrom  *time.Time
	DateTo    *time.Time
}

func (f ProductionLogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.ProjectID != 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.MachineID != 0 {
		q = q.Where("machine_id = ?", f.MachineID)
	}
	if f.TaskID != 0 {
		q = q.Where("task_id = ?", f.TaskID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Shift != "" {
		q = q.Where("shift = ?", f.Shift)
	}
	if f.DateFrom != nil {
		q = q.Where("logged_at >= ?", f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("logged_at <= ?", f.DateTo)
	}
	return q
}

// Append stores a production log. OUTPUT logs also roll their quantities into
// the task counters in the same transaction, applying the usual completion
// rule; an output that would push the task past its target is rejected whole.
func (s *ProductionLogService) Append(entry *models.ProductionLog) error {
	if !slices.Contains(models.LogTypes, entry.Type) {
		return ErrInvalidOperation
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, entry.TaskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if entry.Type == models.LogTypeOutput {
			completed := task.CompletedQty + entry.GoodQty
			if completed > task.TargetQty {
				return ErrExceedsTarget
			}

			task.CompletedQty = completed
			task.DefectQty += entry.DefectQty

			if completed >= task.TargetQty {
				task.Status = models.TaskStatusCompleted
			} else if task.Status != models.TaskStatusPending {
				task.Status = models.TaskStatusInProgress
			}

			if err := tx.Save(&task).Error; err != nil {
				return err
			}
		}

		return tx.Create(entry).Error
	})
}

// ProductionLogRevision carries the correctable fields of a log. Nil means
// "leave unchanged".
type ProductionLogRevision struct {
	MachineID *uint
	Step      *string
	Shift     *string
	GoodQty   *int
	DefectQty *int
	Operator  *string
	LoggedAt  *time.Time
}

// Revise corrects a stored log. Quantity changes on OUTPUT logs are re-applied
// to the task counters as a delta, under the same target bound as Append; a
// correction that would push the task past its target is rejected whole.
func (s *ProductionLogService) Revise(id uint, rev ProductionLogRevision) (*models.ProductionLog, error) {
	var entry models.ProductionLog
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if entry.Type == models.LogTypeOutput && (rev.GoodQty != nil || rev.DefectQty != nil) {
			var task models.Task
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, entry.TaskID).Error; err != nil {
				return err
			}

			newGood, newDefect := entry.GoodQty, entry.DefectQty
			if rev.GoodQty != nil {
				newGood = *rev.GoodQty
			}
			if rev.DefectQty != nil {
				newDefect = *rev.DefectQty
			}

			completed := task.CompletedQty - entry.GoodQty + newGood
			if completed > task.TargetQty {
				return ErrExceedsTarget
			}

			task.CompletedQty = completed
			task.DefectQty += newDefect - entry.DefectQty

			if completed >= task.TargetQty {
				task.Status = models.TaskStatusCompleted
			} else if task.Status != models.TaskStatusPending {
				task.Status = models.TaskStatusInProgress
			}

			if err := tx.Save(&task).Error; err != nil {
				return err
			}

			entry.GoodQty = newGood
			entry.DefectQty = newDefect
		}

		if rev.MachineID != nil {
			entry.MachineID = *rev.MachineID
		}
		if rev.Step != nil {
			entry.Step = *rev.Step
		}
		if rev.Shift != nil {
			entry.Shift = *rev.Shift
		}
		if rev.Operator != nil {
			entry.Operator = *rev.Operator
		}
		if rev.LoggedAt != nil {
			entry.LoggedAt = *rev.LoggedAt
		}

		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove deletes a log. OUTPUT logs have their quantities backed out of the
// task counters in the same transaction, so logs and aggregates stay in step;
// a task completed by the removed output drops back to IN_PROGRESS.
func (s *ProductionLogService) Remove(id uint) (*models.ProductionLog, error) {
	var entry models.ProductionLog
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if entry.Type == models.LogTypeOutput {
			var task models.Task
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, entry.TaskID).Error; err != nil {
				return err
			}

			task.CompletedQty -= entry.GoodQty
			if task.CompletedQty < 0 {
				task.CompletedQty = 0
			}
			task.DefectQty -= entry.DefectQty
			if task.DefectQty < 0 {
				task.DefectQty = 0
			}
			if task.Status == models.TaskStatusCompleted && task.CompletedQty < task.TargetQty {
				task.Status = models.TaskStatusInProgress
			}

			if err := tx.Save(&task).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns logs matching the filter, most recent first.
func (s *ProductionLogService) List(filter ProductionLogFilter) ([]models.ProductionLog, error) {
	var logs []models.ProductionLog
	err := filter.apply(s.DB.Model(&models.ProductionLog{})).
		Preload("Task").
		Preload("Machine").
		Preload("Project").
		Order("logged_at desc").
		Find(&logs).Error
	return logs, err
}

// Summary aggregates good/defect output over the filtered logs.
func (s *ProductionLogService) Summary(filter ProductionLogFilter) (*models.ProductionSummary, error) {
	var summary models.ProductionSummary
	err := filter.apply(s.DB.Model(&models.ProductionLog{})).
		Select("COALESCE(SUM(good_qty), 0) as total_good_qty, " +
			"COALESCE(SUM(defect_qty), 0) as total_defect_qty, " +
			"COUNT(*) as total_logs, " +
			"COALESCE(AVG(good_qty), 0) as avg_good_qty, " +
			"COALESCE(AVG(defect_qty), 0) as avg_defect_qty").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
