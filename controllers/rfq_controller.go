package controllers

import (
	"errors"
	"fmt"
	"time"

	"mes-app/controllers/helpers"
	"mes-app/controllers/idgen"
	"mes-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RfqController struct {
	DB *gorm.DB
}

func NewRfqController(db *gorm.DB) *RfqController {
	return &RfqController{DB: db}
}

type rfqInput struct {
	Date        string `json:"date" validate:"required"`
	Description string `json:"description"`
}

type rfqItemInput struct {
	RfqID      uint `json:"rfq_id" validate:"required"`
	MaterialID uint `json:"material_id" validate:"required"`
	Qty        int  `json:"qty" validate:"required,gte=1"`
}

type createPoInput struct {
	SupplierID uint `json:"supplier_id" validate:"required"`
}

func (c *RfqController) GetAllRfqs(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.Rfq{})
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rfqs []models.Rfq
	if err := query.Order("date desc").Find(&rfqs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "RFQs found", "data": rfqs})
}

func (c *RfqController) GetRfqByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var rfq models.Rfq
	if err := c.DB.First(&rfq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "RFQ not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var items []models.RfqItem
	c.DB.Preload("Material").Where("rfq_id = ?", id).Find(&items)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "RFQ found",
		"data":    fiber.Map{"rfq": rfq, "items": items},
	})
}

func (c *RfqController) CreateRfq(ctx *fiber.Ctx) error {
	var input rfqInput
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

	rfq := models.Rfq{
		Code:        fmt.Sprintf("RFQ-%d", idgen.GenerateID()),
		Date:        date,
		Description: input.Description,
		Status:      models.RfqStatusDraft,
	}

	if err := c.DB.Create(&rfq).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "RFQ created successfully", "data": rfq})
}

func (c *RfqController) UpdateRfq(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var rfq models.Rfq
	if err := c.DB.First(&rfq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "RFQ not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if rfq.Status == models.RfqStatusPoCreated {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "RFQ already converted to a purchase order"})
	}

	var input rfqInput
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

	rfq.Date = date
	rfq.Description = input.Description

	if err := c.DB.Save(&rfq).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "RFQ updated successfully", "data": rfq})
}

func (c *RfqController) DeleteRfq(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var rfq models.Rfq
	if err := c.DB.First(&rfq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "RFQ not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if rfq.Status == models.RfqStatusPoCreated {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "RFQ already converted to a purchase order"})
	}

	if err := c.DB.Where("rfq_id = ?", id).Delete(&models.RfqItem{}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Delete(&rfq).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "RFQ deleted successfully", "data": rfq})
}

func (c *RfqController) AddRfqItem(ctx *fiber.Ctx) error {
	var input rfqItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var rfq models.Rfq
	if err := c.DB.First(&rfq, input.RfqID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "RFQ not found"})
	}

	if rfq.Status == models.RfqStatusPoCreated {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "RFQ already converted to a purchase order"})
	}

	var material models.Material
	if err := c.DB.First(&material, input.MaterialID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	item := models.RfqItem{
		RfqID:      input.RfqID,
		MaterialID: input.MaterialID,
		Name:       material.Name,
		Qty:        input.Qty,
	}

	if err := c.DB.Create(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "RFQ item added successfully", "data": item})
}

func (c *RfqController) DeleteRfqItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.RfqItem
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "RFQ item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var rfq models.Rfq
	if err := c.DB.First(&rfq, item.RfqID).Error; err == nil && rfq.Status == models.RfqStatusPoCreated {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "RFQ already converted to a purchase order"})
	}

	if err := c.DB.Delete(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "RFQ item deleted successfully", "data": item})
}

// CreatePurchaseOrder converts a draft RFQ into a purchase order: items are
// copied with current material prices and the RFQ is marked PO_CREATED.
func (c *RfqController) CreatePurchaseOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input createPoInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var po models.PurchaseOrder
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		var rfq models.Rfq
		if err := tx.First(&rfq, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("rfq not found")
			}
			return err
		}

		if rfq.Status == models.RfqStatusPoCreated {
			return fmt.Errorf("rfq already converted")
		}

		var supplier models.Supplier
		if err := tx.First(&supplier, input.SupplierID).Error; err != nil {
			return fmt.Errorf("supplier not found")
		}

		var rfqItems []models.RfqItem
		if err := tx.Preload("Material").Where("rfq_id = ?", rfq.ID).Find(&rfqItems).Error; err != nil {
			return err
		}
		if len(rfqItems) == 0 {
			return fmt.Errorf("rfq has no items")
		}

		rfqID := rfq.ID
		supplierID := supplier.ID
		po = models.PurchaseOrder{
			Code:        fmt.Sprintf("PO-%d", idgen.GenerateID()),
			RfqID:       &rfqID,
			SupplierID:  &supplierID,
			Date:        time.Now(),
			Description: rfq.Description,
			Status:      models.PoStatusOpen,
		}
		if err := tx.Create(&po).Error; err != nil {
			return err
		}

		grandTotal := decimal.Zero
		for _, ri := range rfqItems {
			subtotal := ri.Material.PricePerUnit.Mul(decimal.NewFromInt(int64(ri.Qty)))
			poItem := models.PoItem{
				PoID:       po.ID,
				MaterialID: ri.MaterialID,
				Name:       ri.Name,
				Qty:        ri.Qty,
				Price:      ri.Material.PricePerUnit,
				Subtotal:   subtotal,
			}
			if err := tx.Create(&poItem).Error; err != nil {
				return err
			}
			grandTotal = grandTotal.Add(subtotal)
		}

		po.GrandTotal = grandTotal
		if err := tx.Save(&po).Error; err != nil {
			return err
		}

		rfq.Status = models.RfqStatusPoCreated
		return tx.Save(&rfq).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": txErr.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Purchase order created successfully", "data": po})
}
