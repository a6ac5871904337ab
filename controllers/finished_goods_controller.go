package controllers

import (
	"errors"

	"mes-app/controllers/helpers"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FinishedGoodsController struct {
	DB        *gorm.DB
	Warehouse *services.WarehouseService
}

func NewFinishedGoodsController(db *gorm.DB, warehouse *services.WarehouseService) *FinishedGoodsController {
	return &FinishedGoodsController{DB: db, Warehouse: warehouse}
}

type finishedGoodsInput struct {
	ProjectID uint   `json:"project_id" validate:"required"`
	ItemName  string `json:"item_name" validate:"required"`
	Unit      string `json:"unit"`
}

type warehouseQtyInput struct {
	Qty int `json:"qty" validate:"required,gte=1"`
}

func (c *FinishedGoodsController) GetAllEntries(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.FinishedGoodsWarehouse{}).Preload("Project")
	if projectID := ctx.QueryInt("project_id"); projectID > 0 {
		query = query.Where("project_id = ?", projectID)
	}

	var entries []models.FinishedGoodsWarehouse
	if err := query.Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouse entries found", "data": entries})
}

func (c *FinishedGoodsController) GetEntryByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var entry models.FinishedGoodsWarehouse
	if err := c.DB.Preload("Project").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Warehouse entry not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouse entry found", "data": entry})
}

func (c *FinishedGoodsController) CreateEntry(ctx *fiber.Ctx) error {
	var input finishedGoodsInput
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

	entry := models.FinishedGoodsWarehouse{
		ProjectID: input.ProjectID,
		ItemName:  input.ItemName,
		Unit:      input.Unit,
	}
	if entry.Unit == "" {
		entry.Unit = project.Unit
	}

	if err := c.DB.Create(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Warehouse entry created successfully", "data": entry})
}

func (c *FinishedGoodsController) DeleteEntry(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var entry models.FinishedGoodsWarehouse
	if err := c.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Warehouse entry not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if entry.AvailableStock > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Warehouse entry still has available stock"})
	}

	if err := c.DB.Delete(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouse entry deleted successfully", "data": entry})
}

// Produce books finished units into the warehouse.
func (c *FinishedGoodsController) Produce(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input warehouseQtyInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	entry, err := c.Warehouse.Produce(uint(id), input.Qty)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production booked", "data": entry})
}

// Ship moves units out of the available stock.
func (c *FinishedGoodsController) Ship(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input warehouseQtyInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	entry, err := c.Warehouse.Ship(uint(id), input.Qty)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientAvailable) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Quantity exceeds available stock"})
		}
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment booked", "data": entry})
}
