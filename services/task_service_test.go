package services_test

import (
	"errors"
	"testing"
	"time"

	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"

	"gorm.io/gorm"
)

func createTestTask(t *testing.T, db *gorm.DB, target int, status string) models.Task {
	t.Helper()

	project := models.Project{Name: "Panel Box 2026", Customer: "PT Maju", Status: models.ProjectStatusInProgress}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	item := models.ProjectItem{ProjectID: project.ID, Name: "Side Panel", QtySet: 1, Quantity: target, Unit: "pcs"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create project item: %v", err)
	}
	machine := models.Machine{Code: "PRS-T1", Name: "Press Test", Type: "PRESS", Status: models.MachineStatusIdle}
	if err := db.Create(&machine).Error; err != nil {
		t.Fatalf("failed to create machine: %v", err)
	}

	task := models.Task{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		ItemID:      item.ID,
		ItemName:    item.Name,
		Step:        "PRESS",
		MachineID:   machine.ID,
		TargetQty:   target,
		Shift:       "1",
		Status:      status,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.TaskStatusPending, models.TaskStatusInProgress, true},
		{models.TaskStatusPending, models.TaskStatusCompleted, false},
		{models.TaskStatusInProgress, models.TaskStatusDowntime, true},
		{models.TaskStatusInProgress, models.TaskStatusCompleted, true},
		{models.TaskStatusDowntime, models.TaskStatusInProgress, true},
		{models.TaskStatusDowntime, models.TaskStatusCompleted, false},
		{models.TaskStatusCompleted, models.TaskStatusInProgress, false},
		{models.TaskStatusInProgress, models.TaskStatusInProgress, true},
	}

	for _, c := range cases {
		if got := services.CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestUpdateQuantitiesExceedsTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	_, err := svc.UpdateQuantities(task.ID, 120, 0)
	if !errors.Is(err, services.ErrExceedsTarget) {
		t.Fatalf("expected ErrExceedsTarget, got %v", err)
	}
}

func TestUpdateQuantitiesCompletesAtTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	updated, err := svc.UpdateQuantities(task.ID, 100, 5)
	if err != nil {
		t.Fatalf("UpdateQuantities failed: %v", err)
	}
	if updated.Status != models.TaskStatusCompleted {
		t.Errorf("status = %s, want %s", updated.Status, models.TaskStatusCompleted)
	}
	if updated.CompletedQty != 100 || updated.DefectQty != 5 {
		t.Errorf("quantities = %d/%d, want 100/5", updated.CompletedQty, updated.DefectQty)
	}
}

func TestUpdateQuantitiesMovesPendingToInProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusPending)

	updated, err := svc.UpdateQuantities(task.ID, 40, 0)
	if err != nil {
		t.Fatalf("UpdateQuantities failed: %v", err)
	}
	if updated.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want %s", updated.Status, models.TaskStatusInProgress)
	}
}

func TestDowntimeAccumulatesWholeMinutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	// 1850s is 30 minutes and 50 seconds; the partial minute must be dropped.
	start := time.Now().Add(-1850 * time.Second)
	if err := db.Model(&models.Task{}).Where("id = ?", task.ID).
		Updates(map[string]interface{}{"status": models.TaskStatusDowntime, "downtime_start": start}).Error; err != nil {
		t.Fatalf("failed to stage downtime: %v", err)
	}

	updated, err := svc.EndDowntime(task.ID)
	if err != nil {
		t.Fatalf("EndDowntime failed: %v", err)
	}
	if updated.TotalDowntimeMinutes != 30 {
		t.Errorf("TotalDowntimeMinutes = %d, want 30", updated.TotalDowntimeMinutes)
	}
	if updated.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want %s", updated.Status, models.TaskStatusInProgress)
	}
	if updated.DowntimeStart != nil {
		t.Errorf("DowntimeStart should be cleared after EndDowntime")
	}
}

func TestEndDowntimeWithoutActiveWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusDowntime)

	updated, err := svc.EndDowntime(task.ID)
	if err != nil {
		t.Fatalf("EndDowntime failed: %v", err)
	}
	if updated.TotalDowntimeMinutes != 0 {
		t.Errorf("TotalDowntimeMinutes = %d, want 0", updated.TotalDowntimeMinutes)
	}
	if updated.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want %s", updated.Status, models.TaskStatusInProgress)
	}
}

func TestEndDowntimeIgnoresFutureStart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	start := time.Now().Add(10 * time.Minute)
	if err := db.Model(&models.Task{}).Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":                 models.TaskStatusDowntime,
			"downtime_start":         start,
			"total_downtime_minutes": 45,
		}).Error; err != nil {
		t.Fatalf("failed to stage downtime: %v", err)
	}

	updated, err := svc.EndDowntime(task.ID)
	if err != nil {
		t.Fatalf("EndDowntime failed: %v", err)
	}
	if updated.TotalDowntimeMinutes != 45 {
		t.Errorf("TotalDowntimeMinutes = %d, want unchanged 45", updated.TotalDowntimeMinutes)
	}
	if updated.DowntimeStart != nil {
		t.Errorf("DowntimeStart should be cleared")
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTaskService(db)
	task := createTestTask(t, db, 100, models.TaskStatusCompleted)

	if _, err := svc.UpdateStatus(task.ID, models.TaskStatusInProgress); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
