package controllers

import (
	"errors"
	"time"

	"mes-app/controllers/helpers"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ProductionLogController struct {
	DB   *gorm.DB
	Logs *services.ProductionLogService
}

func NewProductionLogController(db *gorm.DB, logs *services.ProductionLogService) *ProductionLogController {
	return &ProductionLogController{DB: db, Logs: logs}
}

type productionLogInput struct {
	TaskID    uint   `json:"task_id" validate:"required"`
	MachineID uint   `json:"machine_id" validate:"required"`
	ItemID    uint   `json:"item_id"`
	ProjectID uint   `json:"project_id"`
	Step      string `json:"step"`
	Shift     string `json:"shift"`
	GoodQty   int    `json:"good_qty" validate:"gte=0"`
	DefectQty int    `json:"defect_qty" validate:"gte=0"`
	Operator  string `json:"operator"`
	LoggedAt  string `json:"logged_at"`
	Type      string `json:"type" validate:"required,oneof=OUTPUT DOWNTIME_START DOWNTIME_END"`
}

func (c *ProductionLogController) filterFromQuery(ctx *fiber.Ctx) services.ProductionLogFilter {
	filter := services.ProductionLogFilter{
		ProjectID: uint(ctx.QueryInt("project_id")),
		MachineID: uint(ctx.QueryInt("machine_id")),
		TaskID:    uint(ctx.QueryInt("task_id")),
		Type:      ctx.Query("type"),
		Shift:     ctx.Query("shift"),
	}
	if from := ctx.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := ctx.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			filter.DateTo = &end
		}
	}
	return filter
}

func (c *ProductionLogController) GetAllLogs(ctx *fiber.Ctx) error {
	logs, err := c.Logs.List(c.filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production logs found", "data": logs})
}

func (c *ProductionLogController) GetLogByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var entry models.ProductionLog
	if err := c.DB.Preload("Task").Preload("Machine").Preload("Project").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production log not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production log found", "data": entry})
}

func (c *ProductionLogController) CreateLog(ctx *fiber.Ctx) error {
	var input productionLogInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var task models.Task
	if err := c.DB.First(&task, input.TaskID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, input.MachineID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
	}

	if input.ItemID != 0 {
		var item models.ProjectItem
		if err := c.DB.First(&item, input.ItemID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
		}
	}
	if input.ProjectID != 0 {
		var project models.Project
		if err := c.DB.First(&project, input.ProjectID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
	}

	entry := models.ProductionLog{
		TaskID:    input.TaskID,
		MachineID: input.MachineID,
		ItemID:    input.ItemID,
		ProjectID: input.ProjectID,
		Step:      input.Step,
		Shift:     input.Shift,
		GoodQty:   input.GoodQty,
		DefectQty: input.DefectQty,
		Operator:  input.Operator,
		Type:      input.Type,
	}
	if entry.ItemID == 0 {
		entry.ItemID = task.ItemID
	}
	if entry.ProjectID == 0 {
		entry.ProjectID = task.ProjectID
	}
	if entry.Step == "" {
		entry.Step = task.Step
	}
	if input.LoggedAt != "" {
		if t, err := time.Parse(time.RFC3339, input.LoggedAt); err == nil {
			entry.LoggedAt = t
		}
	}

	if err := c.Logs.Append(&entry); err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Production log created successfully", "data": entry})
}

type productionLogUpdateInput struct {
	MachineID *uint   `json:"machine_id"`
	Step      *string `json:"step"`
	Shift     *string `json:"shift"`
	GoodQty   *int    `json:"good_qty" validate:"omitempty,gte=0"`
	DefectQty *int    `json:"defect_qty" validate:"omitempty,gte=0"`
	Operator  *string `json:"operator"`
	LoggedAt  *string `json:"logged_at"`
}

// UpdateLog corrects a stored log; quantity corrections on OUTPUT logs are
// re-applied to the task counters.
func (c *ProductionLogController) UpdateLog(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input productionLogUpdateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	if input.MachineID != nil {
		var machine models.Machine
		if err := c.DB.First(&machine, *input.MachineID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
	}

	rev := services.ProductionLogRevision{
		MachineID: input.MachineID,
		Step:      input.Step,
		Shift:     input.Shift,
		GoodQty:   input.GoodQty,
		DefectQty: input.DefectQty,
		Operator:  input.Operator,
	}
	if input.LoggedAt != nil {
		if t, err := time.Parse(time.RFC3339, *input.LoggedAt); err == nil {
			rev.LoggedAt = &t
		}
	}

	entry, err := c.Logs.Revise(uint(id), rev)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production log updated successfully", "data": entry})
}

func (c *ProductionLogController) DeleteLog(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	entry, err := c.Logs.Remove(uint(id))
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production log deleted successfully", "data": entry})
}

// GetSummary aggregates output over the filtered logs.
func (c *ProductionLogController) GetSummary(ctx *fiber.Ctx) error {
	summary, err := c.Logs.Summary(c.filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production summary", "data": summary})
}

// ExportLogs writes the filtered logs as an Excel download.
func (c *ProductionLogController) ExportLogs(ctx *fiber.Ctx) error {
	logs, err := c.Logs.List(c.filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"LOGGED_AT", "PROJECT", "MACHINE", "STEP", "SHIFT", "TYPE", "GOOD_QTY", "DEFECT_QTY", "OPERATOR"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, entry := range logs {
		row := i + 2
		values := []interface{}{
			entry.LoggedAt.Format("2006-01-02 15:04:05"),
			entry.Project.Name,
			entry.Machine.Name,
			entry.Step,
			entry.Shift,
			entry.Type,
			entry.GoodQty,
			entry.DefectQty,
			entry.Operator,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate file"})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="production_logs.xlsx"`)
	return ctx.Send(buf.Bytes())
}
