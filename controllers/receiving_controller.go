package controllers

import (
	"errors"
	"fmt"
	"time"

	"mes-app/controllers/helpers"
	"mes-app/controllers/idgen"
	"mes-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReceivingController struct {
	DB *gorm.DB
}

func NewReceivingController(db *gorm.DB) *ReceivingController {
	return &ReceivingController{DB: db}
}

type receivingInput struct {
	PoID        uint   `json:"po_id"`
	SupplierID  uint   `json:"supplier_id"`
	Date        string `json:"date" validate:"required"`
	Description string `json:"description"`
}

type receivingItemInput struct {
	ReceivingID uint `json:"receiving_id" validate:"required"`
	MaterialID  uint `json:"material_id" validate:"required"`
	Qty         int  `json:"qty" validate:"required,gte=1"`
}

func (c *ReceivingController) GetAllReceivings(ctx *fiber.Ctx) error {
	var receivings []models.ReceivingGood
	if err := c.DB.Preload("Supplier").Preload("PurchaseOrder").Order("date desc").Find(&receivings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Receivings found", "data": receivings})
}

func (c *ReceivingController) GetReceivingByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var receiving models.ReceivingGood
	if err := c.DB.Preload("Supplier").Preload("PurchaseOrder").First(&receiving, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiving not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var items []models.ReceivingItem
	c.DB.Preload("Material").Where("receiving_id = ?", id).Find(&items)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Receiving found",
		"data":    fiber.Map{"receiving": receiving, "items": items},
	})
}

// CreateReceiving opens a goods receipt. When a purchase order is referenced,
// all its lines are received at once: stock is added per line and the PO is
// closed as RECEIVED, atomically.
func (c *ReceivingController) CreateReceiving(ctx *fiber.Ctx) error {
	var input receivingInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "message": "Invalid date format, expected YYYY-MM-DD"})
	}

	var receiving models.ReceivingGood
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		receiving = models.ReceivingGood{
			Code:        fmt.Sprintf("RCV-%d", idgen.GenerateID()),
			Date:        date,
			Description: input.Description,
		}
		if input.SupplierID != 0 {
			supplierID := input.SupplierID
			receiving.SupplierID = &supplierID
		}

		if input.PoID == 0 {
			return tx.Create(&receiving).Error
		}

		var po models.PurchaseOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&po, input.PoID).Error; err != nil {
			return fmt.Errorf("purchase order not found")
		}
		if po.Status == models.PoStatusReceived {
			return fmt.Errorf("purchase order already received")
		}

		poID := po.ID
		receiving.PoID = &poID
		if receiving.SupplierID == nil {
			receiving.SupplierID = po.SupplierID
		}
		if err := tx.Create(&receiving).Error; err != nil {
			return err
		}

		var poItems []models.PoItem
		if err := tx.Where("po_id = ?", po.ID).Find(&poItems).Error; err != nil {
			return err
		}

		for _, pi := range poItems {
			if err := receiveMaterial(tx, &receiving, pi.MaterialID, pi.Qty); err != nil {
				return err
			}
		}

		po.Status = models.PoStatusReceived
		return tx.Save(&po).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": txErr.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Receiving created successfully", "data": receiving})
}

// AddReceivingItem books a single received line and adds the quantity to the
// material stock.
func (c *ReceivingController) AddReceivingItem(ctx *fiber.Ctx) error {
	var input receivingItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var item models.ReceivingItem
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		var receiving models.ReceivingGood
		if err := tx.First(&receiving, input.ReceivingID).Error; err != nil {
			return fmt.Errorf("receiving not found")
		}

		if err := receiveMaterial(tx, &receiving, input.MaterialID, input.Qty); err != nil {
			return err
		}

		return tx.Where("receiving_id = ? AND material_id = ?", receiving.ID, input.MaterialID).
			Order("created_at desc").First(&item).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": txErr.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Receiving item added successfully", "data": item})
}

func (c *ReceivingController) DeleteReceiving(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var receiving models.ReceivingGood
	if err := c.DB.First(&receiving, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiving not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var itemCount int64
	c.DB.Model(&models.ReceivingItem{}).Where("receiving_id = ?", id).Count(&itemCount)
	if itemCount > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Receiving has booked items"})
	}

	if err := c.DB.Delete(&receiving).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Receiving deleted successfully", "data": receiving})
}

// receiveMaterial books one received line inside the caller's transaction:
// appends the receiving item, adds stock and records the history.
func receiveMaterial(tx *gorm.DB, receiving *models.ReceivingGood, materialID uint, qty int) error {
	var material models.Material
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&material, materialID).Error; err != nil {
		return fmt.Errorf("material not found")
	}

	receivingID := receiving.ID
	matID := material.ID
	item := models.ReceivingItem{
		ReceivingID: &receivingID,
		MaterialID:  &matID,
		Name:        material.Name,
		Qty:         qty,
	}
	if err := tx.Create(&item).Error; err != nil {
		return err
	}

	before := material.CurrentStock
	material.CurrentStock += qty
	if err := tx.Save(&material).Error; err != nil {
		return err
	}

	history := models.StockHistory{
		MaterialID:  material.ID,
		Change:      qty,
		Operation:   "add",
		StockBefore: before,
		StockAfter:  material.CurrentStock,
		Actor:       receiving.Code,
	}
	return tx.Create(&history).Error
}
