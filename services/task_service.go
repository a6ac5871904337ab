package services

import (
	"errors"
	"time"

	"mes-app/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskService struct {
	DB *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

// taskTransitions is the allowed status graph. The upstream behaviour allowed
// any status to be overwritten by any other; this table tightens it so that
// COMPLETED is terminal and DOWNTIME can only resume into IN_PROGRESS.
var taskTransitions = map[string][]string{
	models.TaskStatusPending:    {models.TaskStatusInProgress, models.TaskStatusDowntime},
	models.TaskStatusInProgress: {models.TaskStatusPending, models.TaskStatusPaused, models.TaskStatusDowntime, models.TaskStatusCompleted},
	models.TaskStatusPaused:     {models.TaskStatusInProgress, models.TaskStatusDowntime},
	models.TaskStatusDowntime:   {models.TaskStatusInProgress},
	models.TaskStatusCompleted:  {},
}

// CanTransition reports whether a task may move from one status to another.
// Same-status updates are treated as no-ops and allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := taskTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(allowed, to)
}

// UpdateStatus overwrites the task status after validating the transition.
func (s *TaskService) UpdateStatus(id uint, status string) (*models.Task, error) {
	if !slices.Contains(models.TaskStatuses, status) {
		return nil, ErrInvalidTransition
	}

	var task models.Task
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !CanTransition(task.Status, status) {
			return ErrInvalidTransition
		}

		task.Status = status
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateQuantities sets completed/defect counters and derives the status:
// reaching the target completes the task, any other progress moves a
// non-pending task to IN_PROGRESS. Exceeding the target leaves the task
// untouched.
func (s *TaskService) UpdateQuantities(id uint, completedQty, defectQty int) (*models.Task, error) {
	var task models.Task
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if completedQty > task.TargetQty {
			return ErrExceedsTarget
		}

		task.CompletedQty = completedQty
		task.DefectQty = defectQty

		if completedQty >= task.TargetQty {
			task.Status = models.TaskStatusCompleted
		} else if task.Status != models.TaskStatusPending {
			task.Status = models.TaskStatusInProgress
		}

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// StartDowntime marks the task as down and stamps the downtime start. Calling
// it while already down simply restarts the window, matching upstream.
func (s *TaskService) StartDowntime(id uint) (*models.Task, error) {
	var task models.Task
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		task.Status = models.TaskStatusDowntime
		task.DowntimeStart = &now
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// EndDowntime closes an open downtime window, accumulating whole elapsed
// minutes, and resumes the task. Without an open window it just forces the
// task back to IN_PROGRESS.
func (s *TaskService) EndDowntime(id uint) (*models.Task, error) {
	var task models.Task
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if task.DowntimeStart != nil {
			// A start stamp in the future (clock skew, corrected row) must not
			// reduce the accumulated total.
			if minutes := int(time.Since(*task.DowntimeStart) / time.Minute); minutes > 0 {
				task.TotalDowntimeMinutes += minutes
			}
			task.DowntimeStart = nil
		}
		task.Status = models.TaskStatusInProgress

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Statistics returns the per-status task counts.
func (s *TaskService) Statistics() (*models.TaskStatistics, error) {
	stats := models.TaskStatistics{}

	counts := []struct {
		status string
		dest   *int64
	}{
		{models.TaskStatusPending, &stats.Pending},
		{models.TaskStatusInProgress, &stats.InProgress},
		{models.TaskStatusPaused, &stats.Paused},
		{models.TaskStatusDowntime, &stats.Downtime},
		{models.TaskStatusCompleted, &stats.Completed},
	}

	if err := s.DB.Model(&models.Task{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := s.DB.Model(&models.Task{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}
