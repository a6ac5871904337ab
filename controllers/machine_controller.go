package controllers

import (
	"errors"

	"mes-app/controllers/helpers"
	"mes-app/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type MachineController struct {
	DB *gorm.DB
}

func NewMachineController(db *gorm.DB) *MachineController {
	return &MachineController{DB: db}
}

type machineInput struct {
	Code            string               `json:"code" validate:"required"`
	Name            string               `json:"name" validate:"required"`
	Type            string               `json:"type" validate:"required,oneof=POTONG PLONG PRESS LASPEN LAS_MIG PHOSPATHING POWDER PACKING"`
	CapacityPerHour int                  `json:"capacity_per_hour" validate:"gte=0"`
	Status          string               `json:"status" validate:"omitempty,oneof=IDLE RUNNING MAINTENANCE OFFLINE DOWNTIME"`
	Personnel       models.PersonnelList `json:"personnel"`
}

func (c *MachineController) GetAllMachines(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.Machine{})
	if mtype := ctx.Query("type"); mtype != "" {
		query = query.Where("type = ?", mtype)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var machines []models.Machine
	if err := query.Order("code asc").Find(&machines).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Machines found", "data": machines})
}

func (c *MachineController) GetMachineByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Machine found", "data": machine})
}

// GetMachinesByType groups machines under the workflow step they serve.
func (c *MachineController) GetMachinesByType(ctx *fiber.Ctx) error {
	mtype := ctx.Params("type")
	if !slices.Contains(models.MachineTypes, mtype) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Unknown machine type"})
	}

	var machines []models.Machine
	if err := c.DB.Where("type = ?", mtype).Order("code asc").Find(&machines).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Machines found", "data": machines})
}

func (c *MachineController) GetMachinesByStatus(ctx *fiber.Ctx) error {
	status := ctx.Params("status")
	if !slices.Contains(models.MachineStatuses, status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Unknown machine status"})
	}

	var machines []models.Machine
	if err := c.DB.Where("status = ?", status).Order("code asc").Find(&machines).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Machines found", "data": machines})
}

func (c *MachineController) CreateMachine(ctx *fiber.Ctx) error {
	var input machineInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	machine := models.Machine{
		Code:            input.Code,
		Name:            input.Name,
		Type:            input.Type,
		CapacityPerHour: input.CapacityPerHour,
		Status:          input.Status,
		Personnel:       input.Personnel,
	}
	if machine.Status == "" {
		machine.Status = models.MachineStatusIdle
	}

	if err := c.DB.Create(&machine).Error; err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Machine code already exists"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Machine created successfully", "data": machine})
}

func (c *MachineController) UpdateMachine(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input machineInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	machine.Code = input.Code
	machine.Name = input.Name
	machine.Type = input.Type
	machine.CapacityPerHour = input.CapacityPerHour
	if input.Status != "" {
		machine.Status = input.Status
	}
	if input.Personnel != nil {
		machine.Personnel = input.Personnel
	}

	if err := c.DB.Save(&machine).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Machine updated successfully", "data": machine})
}

func (c *MachineController) DeleteMachine(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var taskCount int64
	c.DB.Model(&models.Task{}).Where("machine_id = ?", id).Count(&taskCount)
	if taskCount > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Machine is referenced by tasks"})
	}

	if err := c.DB.Delete(&machine).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Machine deleted successfully", "data": machine})
}

// ToggleMaintenance flips the maintenance flag. Entering maintenance forces
// the machine status; leaving it returns the machine to IDLE.
func (c *MachineController) ToggleMaintenance(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	machine.IsMaintenance = !machine.IsMaintenance
	if machine.IsMaintenance {
		machine.Status = models.MachineStatusMaintenance
	} else {
		machine.Status = models.MachineStatusIdle
	}

	if err := c.DB.Save(&machine).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Maintenance toggled", "data": machine})
}
