package controllers

import (
	"errors"

	"mes-app/controllers/helpers"
	"mes-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubAssemblyController struct {
	DB *gorm.DB
}

func NewSubAssemblyController(db *gorm.DB) *SubAssemblyController {
	return &SubAssemblyController{DB: db}
}

type subAssemblyInput struct {
	ItemID       uint               `json:"item_id" validate:"required"`
	Name         string             `json:"name" validate:"required"`
	QtyPerParent int                `json:"qty_per_parent" validate:"required,gte=1"`
	MaterialID   uint               `json:"material_id" validate:"required"`
	Processes    models.ProcessList `json:"processes"`
}

func (c *SubAssemblyController) GetAllSubAssemblies(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.SubAssembly{}).Preload("Material").Preload("Item")
	if itemID := ctx.QueryInt("item_id"); itemID > 0 {
		query = query.Where("item_id = ?", itemID)
	}

	var subAssemblies []models.SubAssembly
	if err := query.Find(&subAssemblies).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Sub assemblies found", "data": subAssemblies})
}

func (c *SubAssemblyController) GetSubAssemblyByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var subAssembly models.SubAssembly
	if err := c.DB.Preload("Material").Preload("Item").First(&subAssembly, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sub assembly not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Sub assembly found", "data": subAssembly})
}

func (c *SubAssemblyController) CreateSubAssembly(ctx *fiber.Ctx) error {
	var input subAssemblyInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var item models.ProjectItem
	if err := c.DB.First(&item, input.ItemID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
	}

	var material models.Material
	if err := c.DB.First(&material, input.MaterialID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	subAssembly := models.SubAssembly{
		ItemID:       input.ItemID,
		Name:         input.Name,
		QtyPerParent: input.QtyPerParent,
		MaterialID:   input.MaterialID,
		Processes:    input.Processes,
		TotalNeeded:  input.QtyPerParent * item.Quantity,
	}

	if err := c.DB.Create(&subAssembly).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Sub assembly created successfully", "data": subAssembly})
}

func (c *SubAssemblyController) UpdateSubAssembly(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var subAssembly models.SubAssembly
	if err := c.DB.First(&subAssembly, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sub assembly not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input subAssemblyInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var item models.ProjectItem
	if err := c.DB.First(&item, input.ItemID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project item not found"})
	}

	subAssembly.ItemID = input.ItemID
	subAssembly.Name = input.Name
	subAssembly.QtyPerParent = input.QtyPerParent
	subAssembly.MaterialID = input.MaterialID
	if input.Processes != nil {
		subAssembly.Processes = input.Processes
	}
	subAssembly.TotalNeeded = input.QtyPerParent * item.Quantity

	if err := c.DB.Save(&subAssembly).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Sub assembly updated successfully", "data": subAssembly})
}

func (c *SubAssemblyController) DeleteSubAssembly(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var subAssembly models.SubAssembly
	if err := c.DB.First(&subAssembly, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sub assembly not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&subAssembly).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Sub assembly deleted successfully", "data": subAssembly})
}
