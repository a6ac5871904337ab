package controllers

import (
	"errors"

	"mes-app/controllers/helpers"
	"mes-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectItemController struct {
	DB *gorm.DB
}

func NewProjectItemController(db *gorm.DB) *ProjectItemController {
	return &ProjectItemController{DB: db}
}

type projectItemInput struct {
	ProjectID  uint                 `json:"project_id" validate:"required"`
	Name       string               `json:"name" validate:"required"`
	Dimensions string               `json:"dimensions"`
	Thickness  string               `json:"thickness"`
	QtySet     int                  `json:"qty_set" validate:"gte=0"`
	Unit       string               `json:"unit"`
	Workflow   models.WorkflowSteps `json:"workflow"`
}

func (c *ProjectItemController) GetAllProjectItems(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.ProjectItem{}).Preload("Project")
	if projectID := ctx.QueryInt("project_id"); projectID > 0 {
		query = query.Where("project_id = ?", projectID)
	}

	var items []models.ProjectItem
	if err := query.Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project items found", "data": items})
}

func (c *ProjectItemController) GetProjectItemByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.ProjectItem
	if err := c.DB.Preload("Project").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project item found", "data": item})
}

func (c *ProjectItemController) CreateProjectItem(ctx *fiber.Ctx) error {
	var input projectItemInput
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

	item := models.ProjectItem{
		ProjectID:  input.ProjectID,
		Name:       input.Name,
		Dimensions: input.Dimensions,
		Thickness:  input.Thickness,
		QtySet:     input.QtySet,
		Quantity:   input.QtySet * project.TotalQty,
		Unit:       input.Unit,
		Workflow:   input.Workflow,
	}

	if err := c.DB.Create(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Project item created successfully", "data": item})
}

func (c *ProjectItemController) UpdateProjectItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.ProjectItem
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input projectItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	// Workflow edits are refused once the workflow is locked.
	if item.IsWorkflowLocked && input.Workflow != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Workflow is locked"})
	}

	var project models.Project
	if err := c.DB.First(&project, input.ProjectID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	item.ProjectID = input.ProjectID
	item.Name = input.Name
	item.Dimensions = input.Dimensions
	item.Thickness = input.Thickness
	item.QtySet = input.QtySet
	item.Quantity = input.QtySet * project.TotalQty
	item.Unit = input.Unit
	if input.Workflow != nil {
		item.Workflow = input.Workflow
	}

	if err := c.DB.Save(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project item updated successfully", "data": item})
}

func (c *ProjectItemController) DeleteProjectItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.ProjectItem
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if item.IsBomLocked || item.IsWorkflowLocked {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Project item is locked"})
	}

	if err := c.DB.Delete(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Project item deleted successfully", "data": item})
}

// LockBom freezes the item's bill of materials.
func (c *ProjectItemController) LockBom(ctx *fiber.Ctx) error {
	return c.setLock(ctx, func(item *models.ProjectItem) { item.IsBomLocked = true }, "BOM locked")
}

// LockWorkflow freezes the item's workflow steps.
func (c *ProjectItemController) LockWorkflow(ctx *fiber.Ctx) error {
	return c.setLock(ctx, func(item *models.ProjectItem) { item.IsWorkflowLocked = true }, "Workflow locked")
}

func (c *ProjectItemController) setLock(ctx *fiber.Ctx, apply func(*models.ProjectItem), message string) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.ProjectItem
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	apply(&item)
	if err := c.DB.Save(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": message, "data": item})
}
