package controllers

import (
	"errors"

	"mes-app/controllers/helpers"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TaskController struct {
	DB    *gorm.DB
	Tasks *services.TaskService
}

func NewTaskController(db *gorm.DB, tasks *services.TaskService) *TaskController {
	return &TaskController{DB: db, Tasks: tasks}
}

type taskInput struct {
	ProjectID uint   `json:"project_id" validate:"required"`
	ItemID    uint   `json:"item_id" validate:"required"`
	Step      string `json:"step" validate:"required"`
	MachineID uint   `json:"machine_id" validate:"required"`
	TargetQty int    `json:"target_qty" validate:"required,gte=1"`
	Shift     string `json:"shift"`
}

type taskStatusInput struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS PAUSED COMPLETED DOWNTIME"`
}

type taskQuantitiesInput struct {
	CompletedQty int `json:"completed_qty" validate:"gte=0"`
	DefectQty    int `json:"defect_qty" validate:"gte=0"`
}

func (c *TaskController) GetAllTasks(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.Task{}).Preload("Machine")
	if projectID := ctx.QueryInt("project_id"); projectID > 0 {
		query = query.Where("project_id = ?", projectID)
	}
	if machineID := ctx.QueryInt("machine_id"); machineID > 0 {
		query = query.Where("machine_id = ?", machineID)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if step := ctx.Query("step"); step != "" {
		query = query.Where("step = ?", step)
	}

	var tasks []models.Task
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Tasks found", "data": tasks})
}

func (c *TaskController) GetTaskByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var task models.Task
	if err := c.DB.Preload("Machine").Preload("Project").Preload("ProjectItem").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Task found", "data": task})
}

func (c *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var input taskInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var project models.Project
	if err := c.DB.First(&project, input.ProjectID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	var item models.ProjectItem
	if err := c.DB.First(&item, input.ItemID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, input.MachineID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
	}

	if machine.IsMaintenance {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Machine is under maintenance"})
	}

	task := models.Task{
		ProjectID:   input.ProjectID,
		ProjectName: project.Name,
		ItemID:      input.ItemID,
		ItemName:    item.Name,
		Step:        input.Step,
		MachineID:   input.MachineID,
		TargetQty:   input.TargetQty,
		Shift:       input.Shift,
		Status:      models.TaskStatusPending,
	}

	if err := c.DB.Create(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Task created successfully", "data": task})
}

func (c *TaskController) UpdateTask(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var task models.Task
	if err := c.DB.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input taskInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	if input.TargetQty < task.CompletedQty {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Target quantity cannot be below completed quantity"})
	}

	task.Step = input.Step
	task.MachineID = input.MachineID
	task.TargetQty = input.TargetQty
	task.Shift = input.Shift

	// Re-derive the status against the new target.
	if task.CompletedQty >= task.TargetQty {
		task.Status = models.TaskStatusCompleted
	} else if task.Status == models.TaskStatusCompleted {
		task.Status = models.TaskStatusInProgress
	}

	if err := c.DB.Save(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Task updated successfully", "data": task})
}

func (c *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var task models.Task
	if err := c.DB.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Task deleted successfully", "data": task})
}

// UpdateStatus moves the task through the status graph.
func (c *TaskController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input taskStatusInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	task, err := c.Tasks.UpdateStatus(uint(id), input.Status)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Task status updated", "data": task})
}

// UpdateQuantities sets the completed/defect counters.
func (c *TaskController) UpdateQuantities(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input taskQuantitiesInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	task, err := c.Tasks.UpdateQuantities(uint(id), input.CompletedQty, input.DefectQty)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Task quantities updated", "data": task})
}

// StartDowntime opens a downtime window on the task.
func (c *TaskController) StartDowntime(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	task, err := c.Tasks.StartDowntime(uint(id))
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Downtime started", "data": task})
}

// EndDowntime closes the downtime window and accumulates elapsed minutes.
func (c *TaskController) EndDowntime(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	task, err := c.Tasks.EndDowntime(uint(id))
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Downtime ended", "data": task})
}

// GetStatistics returns the per-status task counts.
func (c *TaskController) GetStatistics(ctx *fiber.Ctx) error {
	stats, err := c.Tasks.Statistics()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Task statistics", "data": stats})
}
