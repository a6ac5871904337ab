package controllers_test

import (
	"fmt"
	"testing"

	"mes-app/controllers"
	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setupLogApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	controller := controllers.NewProductionLogController(db, services.NewProductionLogService(db))

	app := fiber.New()
	app.Post("/production-logs", controller.CreateLog)
	app.Put("/production-logs/:id", controller.UpdateLog)
	app.Delete("/production-logs/:id", controller.DeleteLog)
	return app, db
}

func seedLogTask(t *testing.T, db *gorm.DB) models.Task {
	t.Helper()

	project := models.Project{Code: "PRJ-LOG", Name: "Shelf Batch", Customer: "PT Karya"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	item := models.ProjectItem{ProjectID: project.ID, Name: "Shelf Plate", QtySet: 1, Quantity: 100, Unit: "pcs"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create project item: %v", err)
	}
	machine := models.Machine{Code: "PRS-LOG", Name: "Press Log Test", Type: "PRESS", Status: models.MachineStatusRunning}
	if err := db.Create(&machine).Error; err != nil {
		t.Fatalf("failed to create machine: %v", err)
	}
	task := models.Task{
		ProjectID: project.ID, ProjectName: project.Name,
		ItemID: item.ID, ItemName: item.Name,
		Step: "PRESS", MachineID: machine.ID,
		TargetQty: 100, Status: models.TaskStatusInProgress,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func TestCreateLogUnknownMachine(t *testing.T) {
	app, db := setupLogApp(t)
	task := seedLogTask(t, db)

	resp, body := doJSON(t, app, "POST", "/production-logs", fiber.Map{
		"task_id":    task.ID,
		"machine_id": 9999,
		"good_qty":   10,
		"type":       models.LogTypeOutput,
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %v)", resp.StatusCode, body)
	}
}

func TestCreateLogUnknownItemOrProject(t *testing.T) {
	app, db := setupLogApp(t)
	task := seedLogTask(t, db)

	resp, body := doJSON(t, app, "POST", "/production-logs", fiber.Map{
		"task_id":    task.ID,
		"machine_id": task.MachineID,
		"item_id":    9999,
		"good_qty":   10,
		"type":       models.LogTypeOutput,
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("item: status = %d, want 404 (body %v)", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, "POST", "/production-logs", fiber.Map{
		"task_id":    task.ID,
		"machine_id": task.MachineID,
		"project_id": 9999,
		"good_qty":   10,
		"type":       models.LogTypeOutput,
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("project: status = %d, want 404 (body %v)", resp.StatusCode, body)
	}
}

func TestCreateLogDefaultsFromTask(t *testing.T) {
	app, db := setupLogApp(t)
	task := seedLogTask(t, db)

	resp, body := doJSON(t, app, "POST", "/production-logs", fiber.Map{
		"task_id":    task.ID,
		"machine_id": task.MachineID,
		"good_qty":   10,
		"type":       models.LogTypeOutput,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]interface{})
	if uint(data["item_id"].(float64)) != task.ItemID || uint(data["project_id"].(float64)) != task.ProjectID {
		t.Errorf("defaults not taken from task: item_id=%v project_id=%v", data["item_id"], data["project_id"])
	}
	if data["step"] != task.Step {
		t.Errorf("step = %v, want %s", data["step"], task.Step)
	}
}

func TestUpdateLogCorrection(t *testing.T) {
	app, db := setupLogApp(t)
	task := seedLogTask(t, db)

	resp, body := doJSON(t, app, "POST", "/production-logs", fiber.Map{
		"task_id":    task.ID,
		"machine_id": task.MachineID,
		"good_qty":   40,
		"defect_qty": 3,
		"type":       models.LogTypeOutput,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", resp.StatusCode, body)
	}
	logID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/production-logs/%d", logID), fiber.Map{
		"good_qty": 25,
		"operator": "siti",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]interface{})
	if int(data["good_qty"].(float64)) != 25 || data["operator"] != "siti" {
		t.Errorf("corrected log = %v/%v, want 25/siti", data["good_qty"], data["operator"])
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.CompletedQty != 25 {
		t.Errorf("CompletedQty = %d, want 25", reloaded.CompletedQty)
	}

	resp, body = doJSON(t, app, "PUT", "/production-logs/9999", fiber.Map{"good_qty": 1})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %v)", resp.StatusCode, body)
	}
}

func TestDeleteLogReversesTask(t *testing.T) {
	app, db := setupLogApp(t)
	task := seedLogTask(t, db)

	resp, body := doJSON(t, app, "POST", "/production-logs", fiber.Map{
		"task_id":    task.ID,
		"machine_id": task.MachineID,
		"good_qty":   40,
		"type":       models.LogTypeOutput,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", resp.StatusCode, body)
	}
	logID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	resp, body = doJSON(t, app, "DELETE", fmt.Sprintf("/production-logs/%d", logID), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}

	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.CompletedQty != 0 {
		t.Errorf("CompletedQty = %d, want 0 after delete", reloaded.CompletedQty)
	}
}
