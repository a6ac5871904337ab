package controllers

import (
	"errors"
	"strconv"

	"mes-app/controllers/helpers"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BomItemController struct {
	DB  *gorm.DB
	Bom *services.BomService
}

func NewBomItemController(db *gorm.DB, bom *services.BomService) *BomItemController {
	return &BomItemController{DB: db, Bom: bom}
}

type bomItemInput struct {
	ItemID          uint `json:"item_id" validate:"required"`
	MaterialID      uint `json:"material_id" validate:"required"`
	QuantityPerUnit int  `json:"quantity_per_unit" validate:"required,gte=1"`
}

type bomQtyInput struct {
	Qty int `json:"qty" validate:"required,gte=1"`
}

func (c *BomItemController) GetAllBomItems(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.BomItem{}).Preload("Material").Preload("Item")
	if itemID := ctx.QueryInt("item_id"); itemID > 0 {
		query = query.Where("item_id = ?", itemID)
	}

	var bomItems []models.BomItem
	if err := query.Find(&bomItems).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "BOM items found", "data": bomItems})
}

func (c *BomItemController) GetBomItemByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var bomItem models.BomItem
	if err := c.DB.Preload("Material").Preload("Item").First(&bomItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "BOM item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "BOM item found", "data": bomItem})
}

func (c *BomItemController) CreateBomItem(ctx *fiber.Ctx) error {
	var input bomItemInput
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

	if item.IsBomLocked {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "BOM is locked"})
	}

	var material models.Material
	if err := c.DB.First(&material, input.MaterialID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	bomItem := models.BomItem{
		ItemID:          input.ItemID,
		MaterialID:      input.MaterialID,
		QuantityPerUnit: input.QuantityPerUnit,
		TotalRequired:   input.QuantityPerUnit * item.Quantity,
	}

	if err := c.DB.Create(&bomItem).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "BOM item created successfully", "data": bomItem})
}

func (c *BomItemController) UpdateBomItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var bomItem models.BomItem
	if err := c.DB.First(&bomItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "BOM item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var parent models.ProjectItem
	if err := c.DB.First(&parent, bomItem.ItemID).Error; err == nil && parent.IsBomLocked {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "BOM is locked"})
	}

	var input bomItemInput
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

	bomItem.ItemID = input.ItemID
	bomItem.MaterialID = input.MaterialID
	bomItem.QuantityPerUnit = input.QuantityPerUnit
	bomItem.TotalRequired = input.QuantityPerUnit * item.Quantity

	if err := c.DB.Save(&bomItem).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "BOM item updated successfully", "data": bomItem})
}

func (c *BomItemController) DeleteBomItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var bomItem models.BomItem
	if err := c.DB.First(&bomItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "BOM item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var parent models.ProjectItem
	if err := c.DB.First(&parent, bomItem.ItemID).Error; err == nil && parent.IsBomLocked {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "BOM is locked"})
	}

	if err := c.DB.Delete(&bomItem).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "BOM item deleted successfully", "data": bomItem})
}

// Allocate reserves material quantity against the BOM line.
func (c *BomItemController) Allocate(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input bomQtyInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	bomItem, err := c.Bom.Allocate(uint(id), input.Qty)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Allocation updated", "data": bomItem})
}

// Realize consumes allocated material and draws it from stock.
func (c *BomItemController) Realize(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input bomQtyInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	actor := ""
	if userID, ok := ctx.Locals("userID").(float64); ok {
		actor = strconv.Itoa(int(userID))
	}

	bomItem, err := c.Bom.Realize(uint(id), input.Qty, actor)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Realization updated", "data": bomItem})
}
