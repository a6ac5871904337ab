package controllers

import (
	"errors"
	"fmt"
	"time"

	"mes-app/controllers/helpers"
	"mes-app/controllers/idgen"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeliveryOrderController struct {
	DB        *gorm.DB
	Warehouse *services.WarehouseService
}

func NewDeliveryOrderController(db *gorm.DB, warehouse *services.WarehouseService) *DeliveryOrderController {
	return &DeliveryOrderController{DB: db, Warehouse: warehouse}
}

type deliveryOrderInput struct {
	Date         string `json:"date" validate:"required"`
	Customer     string `json:"customer" validate:"required"`
	Address      string `json:"address"`
	DriverName   string `json:"driver_name"`
	VehiclePlate string `json:"vehicle_plate"`
}

type deliveryOrderItemInput struct {
	DeliveryOrderID uint `json:"delivery_order_id" validate:"required"`
	WarehouseID     uint `json:"warehouse_id" validate:"required"`
	Qty             int  `json:"qty" validate:"required,gte=1"`
}

func (c *DeliveryOrderController) GetAllDeliveryOrders(ctx *fiber.Ctx) error {
	var orders []models.DeliveryOrder
	if err := c.DB.Order("date desc").Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Delivery orders found", "data": orders})
}

func (c *DeliveryOrderController) GetDeliveryOrderByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var order models.DeliveryOrder
	if err := c.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Delivery order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var items []models.DeliveryOrderItem
	c.DB.Preload("Warehouse").Where("delivery_order_id = ?", id).Find(&items)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Delivery order found",
		"data":    fiber.Map{"delivery_order": order, "items": items},
	})
}

func (c *DeliveryOrderController) CreateDeliveryOrder(ctx *fiber.Ctx) error {
	var input deliveryOrderInput
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

	order := models.DeliveryOrder{
		Code:         fmt.Sprintf("DO-%d", idgen.GenerateID()),
		Date:         date,
		Customer:     input.Customer,
		Address:      input.Address,
		DriverName:   input.DriverName,
		VehiclePlate: input.VehiclePlate,
	}

	if err := c.DB.Create(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Delivery order created successfully", "data": order})
}

func (c *DeliveryOrderController) UpdateDeliveryOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var order models.DeliveryOrder
	if err := c.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Delivery order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input deliveryOrderInput
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

	order.Date = date
	order.Customer = input.Customer
	order.Address = input.Address
	order.DriverName = input.DriverName
	order.VehiclePlate = input.VehiclePlate

	if err := c.DB.Save(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Delivery order updated successfully", "data": order})
}

func (c *DeliveryOrderController) DeleteDeliveryOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var order models.DeliveryOrder
	if err := c.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Delivery order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var itemCount int64
	c.DB.Model(&models.DeliveryOrderItem{}).Where("delivery_order_id = ?", id).Count(&itemCount)
	if itemCount > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Delivery order has shipped items"})
	}

	if err := c.DB.Delete(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Delivery order deleted successfully", "data": order})
}

// AddDeliveryItem ships finished goods from the warehouse onto the delivery
// order. Stock moves in the same transaction as the item row.
func (c *DeliveryOrderController) AddDeliveryItem(ctx *fiber.Ctx) error {
	var input deliveryOrderItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	var order models.DeliveryOrder
	if err := c.DB.First(&order, input.DeliveryOrderID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Delivery order not found"})
	}

	item := models.DeliveryOrderItem{
		DeliveryOrderID: input.DeliveryOrderID,
		WarehouseID:     input.WarehouseID,
		Qty:             input.Qty,
	}

	var entry models.FinishedGoodsWarehouse
	if err := c.DB.Preload("Project").First(&entry, input.WarehouseID).Error; err == nil {
		item.ProjectName = entry.Project.Name
	}

	if err := c.Warehouse.CreateDeliveryItem(&item); err != nil {
		if errors.Is(err, services.ErrInsufficientAvailable) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Quantity exceeds available stock"})
		}
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Delivery item added successfully", "data": item})
}

// DeleteDeliveryItem removes a line and returns its quantity to the warehouse.
func (c *DeliveryOrderController) DeleteDeliveryItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.Warehouse.DeleteDeliveryItem(uint(id)); err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Delivery item deleted successfully"})
}
