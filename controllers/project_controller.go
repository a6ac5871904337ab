package controllers

import (
	"errors"
	"time"

	"mes-app/controllers/helpers"
	"mes-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

type projectInput struct {
	Code           string `json:"code" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Customer       string `json:"customer"`
	StartDate      string `json:"start_date" validate:"required"`
	Deadline       string `json:"deadline" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=PLANNED IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	Progress       int    `json:"progress" validate:"gte=0,lte=100"`
	QtyPerUnit     int    `json:"qty_per_unit" validate:"gte=0"`
	ProcurementQty int    `json:"procurement_qty" validate:"gte=0"`
	Unit           string `json:"unit"`
}

// parseDates validates the date pair: both parse as YYYY-MM-DD and the start
// may not fall after the deadline.
func (in *projectInput) parseDates() (start, deadline time.Time, err error) {
	start, err = time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return
	}
	deadline, err = time.Parse("2006-01-02", in.Deadline)
	if err != nil {
		return
	}
	if start.After(deadline) {
		err = errors.New("start_date must be before or equal to deadline")
	}
	return
}

func (c *ProjectController) GetAllProjects(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.Project{})
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customer := ctx.Query("customer"); customer != "" {
		query = query.Where("customer LIKE ?", "%"+customer+"%")
	}

	var projects []models.Project
	if err := query.Order("deadline asc").Find(&projects).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Projects found", "data": projects})
}

func (c *ProjectController) GetProjectByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var project models.Project
	if err := c.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project found", "data": project})
}

func (c *ProjectController) CreateProject(ctx *fiber.Ctx) error {
	var input projectInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	start, deadline, err := input.parseDates()
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	project := models.Project{
		Code:           input.Code,
		Name:           input.Name,
		Customer:       input.Customer,
		StartDate:      start,
		Deadline:       deadline,
		Status:         input.Status,
		Progress:       input.Progress,
		QtyPerUnit:     input.QtyPerUnit,
		ProcurementQty: input.ProcurementQty,
		TotalQty:       input.QtyPerUnit * input.ProcurementQty,
		Unit:           input.Unit,
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanned
	}

	if err := c.DB.Create(&project).Error; err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Project code already exists"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Project created successfully", "data": project})
}

func (c *ProjectController) UpdateProject(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var project models.Project
	if err := c.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input projectInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	start, deadline, err := input.parseDates()
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	project.Code = input.Code
	project.Name = input.Name
	project.Customer = input.Customer
	project.StartDate = start
	project.Deadline = deadline
	if input.Status != "" {
		project.Status = input.Status
	}
	project.Progress = input.Progress
	project.QtyPerUnit = input.QtyPerUnit
	project.ProcurementQty = input.ProcurementQty
	project.TotalQty = input.QtyPerUnit * input.ProcurementQty
	project.Unit = input.Unit

	if err := c.DB.Save(&project).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project updated successfully", "data": project})
}

func (c *ProjectController) DeleteProject(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var project models.Project
	if err := c.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&project).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project deleted successfully", "data": project})
}

// ToggleLock flips the project lock used to freeze its structure once
// production starts.
func (c *ProjectController) ToggleLock(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var project models.Project
	if err := c.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	project.IsLocked = !project.IsLocked
	if err := c.DB.Save(&project).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project lock toggled", "data": project})
}
