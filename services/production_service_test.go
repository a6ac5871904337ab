package services_test

import (
	"errors"
	"testing"

	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"
)

func TestAppendOutputRollsIntoTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{
		TaskID:    task.ID,
		MachineID: task.MachineID,
		ItemID:    task.ItemID,
		ProjectID: task.ProjectID,
		Step:      task.Step,
		Shift:     "1",
		GoodQty:   40,
		DefectQty: 3,
		Operator:  "budi",
		Type:      models.LogTypeOutput,
	}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if entry.LoggedAt.IsZero() {
		t.Errorf("LoggedAt should default to now")
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.CompletedQty != 40 || reloaded.DefectQty != 3 {
		t.Errorf("task counters = %d/%d, want 40/3", reloaded.CompletedQty, reloaded.DefectQty)
	}
	if reloaded.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want %s", reloaded.Status, models.TaskStatusInProgress)
	}
}

func TestAppendOutputCompletesTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 100, Type: models.LogTypeOutput}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.Status != models.TaskStatusCompleted {
		t.Errorf("status = %s, want %s", reloaded.Status, models.TaskStatusCompleted)
	}
}

func TestAppendOutputExceedsTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	first := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 70, Type: models.LogTypeOutput}
	if err := svc.Append(&first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	second := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 40, Type: models.LogTypeOutput}
	if err := svc.Append(&second); !errors.Is(err, services.ErrExceedsTarget) {
		t.Fatalf("expected ErrExceedsTarget, got %v", err)
	}

	var count int64
	db.Model(&models.ProductionLog{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 1 {
		t.Errorf("rejected output must not be stored, got %d logs", count)
	}
}

func TestAppendDowntimeLogLeavesCountersAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, Type: models.LogTypeDowntimeStart}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.CompletedQty != 0 {
		t.Errorf("CompletedQty = %d, want 0", reloaded.CompletedQty)
	}
}

func TestAppendRejectsUnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, Type: "MAINTENANCE"}
	if err := svc.Append(&entry); !errors.Is(err, services.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestRemoveOutputBacksOutTaskCounters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 100, DefectQty: 5, Type: models.LogTypeOutput}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	removed, err := svc.Remove(entry.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.ID != entry.ID {
		t.Errorf("removed log id = %d, want %d", removed.ID, entry.ID)
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.CompletedQty != 0 || reloaded.DefectQty != 0 {
		t.Errorf("task counters = %d/%d, want 0/0", reloaded.CompletedQty, reloaded.DefectQty)
	}
	if reloaded.Status != models.TaskStatusInProgress {
		t.Errorf("status = %s, want %s after the completing output is removed", reloaded.Status, models.TaskStatusInProgress)
	}

	var count int64
	db.Model(&models.ProductionLog{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 0 {
		t.Errorf("log count = %d, want 0", count)
	}
}

func TestReviseOutputReappliesDelta(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 40, DefectQty: 3, Type: models.LogTypeOutput}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	good, defect := 25, 1
	revised, err := svc.Revise(entry.ID, services.ProductionLogRevision{GoodQty: &good, DefectQty: &defect})
	if err != nil {
		t.Fatalf("Revise failed: %v", err)
	}
	if revised.GoodQty != 25 || revised.DefectQty != 1 {
		t.Errorf("revised log = %d/%d, want 25/1", revised.GoodQty, revised.DefectQty)
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.CompletedQty != 25 || reloaded.DefectQty != 1 {
		t.Errorf("task counters = %d/%d, want 25/1", reloaded.CompletedQty, reloaded.DefectQty)
	}
}

func TestReviseOutputCannotExceedTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 40, Type: models.LogTypeOutput}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	other := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 50, Type: models.LogTypeOutput}
	if err := svc.Append(&other); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// 90 on the task; raising the first log from 40 to 60 would mean 110.
	good := 60
	if _, err := svc.Revise(entry.ID, services.ProductionLogRevision{GoodQty: &good}); !errors.Is(err, services.ErrExceedsTarget) {
		t.Fatalf("expected ErrExceedsTarget, got %v", err)
	}

	var reloadedLog models.ProductionLog
	if err := db.First(&reloadedLog, entry.ID).Error; err != nil {
		t.Fatalf("failed to reload log: %v", err)
	}
	if reloadedLog.GoodQty != 40 {
		t.Errorf("GoodQty = %d, want unchanged 40", reloadedLog.GoodQty)
	}
}

func TestReviseCompletesTaskAtTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 100, models.TaskStatusInProgress)

	entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: 90, Type: models.LogTypeOutput}
	if err := svc.Append(&entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	good := 100
	if _, err := svc.Revise(entry.ID, services.ProductionLogRevision{GoodQty: &good}); err != nil {
		t.Fatalf("Revise failed: %v", err)
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.Status != models.TaskStatusCompleted {
		t.Errorf("status = %s, want %s", reloaded.Status, models.TaskStatusCompleted)
	}
}

func TestSummaryAggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewProductionLogService(db)
	task := createTestTask(t, db, 1000, models.TaskStatusInProgress)

	outputs := []struct{ good, defect int }{{40, 2}, {60, 4}}
	for _, o := range outputs {
		entry := models.ProductionLog{TaskID: task.ID, MachineID: task.MachineID, ItemID: task.ItemID, ProjectID: task.ProjectID, GoodQty: o.good, DefectQty: o.defect, Type: models.LogTypeOutput}
		if err := svc.Append(&entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	summary, err := svc.Summary(services.ProductionLogFilter{TaskID: task.ID})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalGoodQty != 100 || summary.TotalDefectQty != 6 {
		t.Errorf("totals = %d/%d, want 100/6", summary.TotalGoodQty, summary.TotalDefectQty)
	}
	if summary.TotalLogs != 2 {
		t.Errorf("TotalLogs = %d, want 2", summary.TotalLogs)
	}
}
