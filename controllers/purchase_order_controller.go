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

type PurchaseOrderController struct {
	DB *gorm.DB
}

func NewPurchaseOrderController(db *gorm.DB) *PurchaseOrderController {
	return &PurchaseOrderController{DB: db}
}

type purchaseOrderInput struct {
	SupplierID  uint   `json:"supplier_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Description string `json:"description"`
}

type poItemInput struct {
	PoID       uint            `json:"po_id" validate:"required"`
	MaterialID uint            `json:"material_id" validate:"required"`
	Qty        int             `json:"qty" validate:"required,gte=1"`
	Price      decimal.Decimal `json:"price"`
}

func (c *PurchaseOrderController) GetAllPurchaseOrders(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.PurchaseOrder{}).Preload("Supplier")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("date desc").Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase orders found", "data": orders})
}

func (c *PurchaseOrderController) GetPurchaseOrderByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var po models.PurchaseOrder
	if err := c.DB.Preload("Supplier").Preload("Rfq").First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var items []models.PoItem
	c.DB.Preload("Material").Where("po_id = ?", id).Find(&items)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Purchase order found",
		"data":    fiber.Map{"purchase_order": po, "items": items},
	})
}

// CreatePurchaseOrder opens a direct PO without an RFQ.
func (c *PurchaseOrderController) CreatePurchaseOrder(ctx *fiber.Ctx) error {
	var input purchaseOrderInput
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

	var supplier models.Supplier
	if err := c.DB.First(&supplier, input.SupplierID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	supplierID := supplier.ID
	po := models.PurchaseOrder{
		Code:        fmt.Sprintf("PO-%d", idgen.GenerateID()),
		SupplierID:  &supplierID,
		Date:        date,
		Description: input.Description,
		Status:      models.PoStatusOpen,
	}

	if err := c.DB.Create(&po).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Purchase order created successfully", "data": po})
}

func (c *PurchaseOrderController) UpdatePurchaseOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var po models.PurchaseOrder
	if err := c.DB.First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if po.Status == models.PoStatusReceived {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Purchase order already received"})
	}

	var input purchaseOrderInput
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

	supplierID := input.SupplierID
	po.SupplierID = &supplierID
	po.Date = date
	po.Description = input.Description

	if err := c.DB.Save(&po).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order updated successfully", "data": po})
}

func (c *PurchaseOrderController) DeletePurchaseOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var po models.PurchaseOrder
	if err := c.DB.First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if po.Status == models.PoStatusReceived {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Purchase order already received"})
	}

	if err := c.DB.Where("po_id = ?", id).Delete(&models.PoItem{}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Delete(&po).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order deleted successfully", "data": po})
}

// AddPoItem appends a line to an open PO and refreshes the grand total. The
// price defaults to the material's current price when omitted.
func (c *PurchaseOrderController) AddPoItem(ctx *fiber.Ctx) error {
	var input poItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var item models.PoItem
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, input.PoID).Error; err != nil {
			return fmt.Errorf("purchase order not found")
		}
		if po.Status == models.PoStatusReceived {
			return fmt.Errorf("purchase order already received")
		}

		var material models.Material
		if err := tx.First(&material, input.MaterialID).Error; err != nil {
			return fmt.Errorf("material not found")
		}

		price := input.Price
		if price.IsZero() {
			price = material.PricePerUnit
		}

		item = models.PoItem{
			PoID:       input.PoID,
			MaterialID: input.MaterialID,
			Name:       material.Name,
			Qty:        input.Qty,
			Price:      price,
			Subtotal:   price.Mul(decimal.NewFromInt(int64(input.Qty))),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return refreshGrandTotal(tx, &po)
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": txErr.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "PO item added successfully", "data": item})
}

func (c *PurchaseOrderController) DeletePoItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.PoItem
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return fmt.Errorf("po item not found")
		}

		var po models.PurchaseOrder
		if err := tx.First(&po, item.PoID).Error; err != nil {
			return fmt.Errorf("purchase order not found")
		}
		if po.Status == models.PoStatusReceived {
			return fmt.Errorf("purchase order already received")
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		return refreshGrandTotal(tx, &po)
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": txErr.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "PO item deleted successfully", "data": item})
}

// refreshGrandTotal recomputes the PO grand total from its remaining lines.
func refreshGrandTotal(tx *gorm.DB, po *models.PurchaseOrder) error {
	var items []models.PoItem
	if err := tx.Where("po_id = ?", po.ID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	po.GrandTotal = total
	return tx.Save(po).Error
}
