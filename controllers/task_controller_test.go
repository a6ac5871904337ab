package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"mes-app/controllers"
	"mes-app/models"
	"mes-app/services"
	"mes-app/testutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setupTaskApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	controller := controllers.NewTaskController(db, services.NewTaskService(db))

	app := fiber.New()
	app.Get("/tasks", controller.GetAllTasks)
	app.Post("/tasks", controller.CreateTask)
	app.Get("/tasks/:id", controller.GetTaskByID)
	app.Put("/tasks/:id", controller.UpdateTask)
	app.Put("/tasks/:id/status", controller.UpdateStatus)
	app.Put("/tasks/:id/quantities", controller.UpdateQuantities)
	return app, db
}

func seedTaskFixtures(t *testing.T, db *gorm.DB) (models.Project, models.ProjectItem, models.Machine) {
	t.Helper()

	project := models.Project{Code: "PRJ-CTL", Name: "Rack Batch", Customer: "PT Jaya"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	item := models.ProjectItem{ProjectID: project.ID, Name: "Rack Frame", QtySet: 1, Quantity: 50, Unit: "pcs"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create project item: %v", err)
	}
	machine := models.Machine{Code: "PTG-CTL", Name: "Cutting Test", Type: "POTONG", Status: models.MachineStatusIdle}
	if err := db.Create(&machine).Error; err != nil {
		t.Fatalf("failed to create machine: %v", err)
	}
	return project, item, machine
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return resp, parsed
}

func TestCreateTaskRoundTrip(t *testing.T) {
	app, db := setupTaskApp(t)
	project, item, machine := seedTaskFixtures(t, db)

	resp, body := doJSON(t, app, "POST", "/tasks", fiber.Map{
		"project_id": project.ID,
		"item_id":    item.ID,
		"step":       "POTONG",
		"machine_id": machine.ID,
		"target_qty": 50,
		"shift":      "1",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", resp.StatusCode, body)
	}

	data := body["data"].(map[string]interface{})
	if data["status"] != models.TaskStatusPending {
		t.Errorf("new task status = %v, want PENDING", data["status"])
	}
	if data["project_name"] != project.Name || data["item_name"] != item.Name {
		t.Errorf("denormalized names = %v / %v", data["project_name"], data["item_name"])
	}

	id := uint(data["ID"].(float64))
	resp, body = doJSON(t, app, "GET", fmt.Sprintf("/tasks/%d", id), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	fetched := body["data"].(map[string]interface{})
	if int(fetched["target_qty"].(float64)) != 50 {
		t.Errorf("target_qty = %v, want 50", fetched["target_qty"])
	}
}

func TestCreateTaskValidation(t *testing.T) {
	app, _ := setupTaskApp(t)

	resp, body := doJSON(t, app, "POST", "/tasks", fiber.Map{"step": "POTONG"})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %v)", resp.StatusCode, body)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestCreateTaskOnMaintenanceMachine(t *testing.T) {
	app, db := setupTaskApp(t)
	project, item, machine := seedTaskFixtures(t, db)

	if err := db.Model(&models.Machine{}).Where("id = ?", machine.ID).
		Updates(map[string]interface{}{"is_maintenance": true, "status": models.MachineStatusMaintenance}).Error; err != nil {
		t.Fatalf("failed to flag maintenance: %v", err)
	}

	resp, body := doJSON(t, app, "POST", "/tasks", fiber.Map{
		"project_id": project.ID,
		"item_id":    item.ID,
		"step":       "POTONG",
		"machine_id": machine.ID,
		"target_qty": 50,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %v)", resp.StatusCode, body)
	}
}

func TestUpdateTaskTargetBelowCompleted(t *testing.T) {
	app, db := setupTaskApp(t)
	project, item, machine := seedTaskFixtures(t, db)

	task := models.Task{
		ProjectID: project.ID, ProjectName: project.Name,
		ItemID: item.ID, ItemName: item.Name,
		Step: "POTONG", MachineID: machine.ID,
		TargetQty: 50, CompletedQty: 30, Status: models.TaskStatusInProgress,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	resp, body := doJSON(t, app, "PUT", fmt.Sprintf("/tasks/%d", task.ID), fiber.Map{
		"project_id": project.ID,
		"item_id":    item.ID,
		"step":       "POTONG",
		"machine_id": machine.ID,
		"target_qty": 20,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %v)", resp.StatusCode, body)
	}

	// Lowering the target onto the completed count is allowed and completes the task.
	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/tasks/%d", task.ID), fiber.Map{
		"project_id": project.ID,
		"item_id":    item.ID,
		"step":       "POTONG",
		"machine_id": machine.ID,
		"target_qty": 30,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]interface{})
	if data["status"] != models.TaskStatusCompleted {
		t.Errorf("status = %v, want COMPLETED", data["status"])
	}
}

func TestUpdateQuantitiesOverTargetViaHTTP(t *testing.T) {
	app, db := setupTaskApp(t)
	project, item, machine := seedTaskFixtures(t, db)

	task := models.Task{
		ProjectID: project.ID, ProjectName: project.Name,
		ItemID: item.ID, ItemName: item.Name,
		Step: "POTONG", MachineID: machine.ID,
		TargetQty: 50, Status: models.TaskStatusInProgress,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	resp, body := doJSON(t, app, "PUT", fmt.Sprintf("/tasks/%d/quantities", task.ID), fiber.Map{
		"completed_qty": 60,
		"defect_qty":    0,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %v)", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/tasks/%d/quantities", task.ID), fiber.Map{
		"completed_qty": 50,
		"defect_qty":    1,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]interface{})
	if data["status"] != models.TaskStatusCompleted {
		t.Errorf("status = %v, want COMPLETED", data["status"])
	}
}
