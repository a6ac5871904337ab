package controllers

import (
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB    *gorm.DB
	Tasks *services.TaskService
	Stock *services.StockService
}

func NewDashboardController(db *gorm.DB, tasks *services.TaskService, stock *services.StockService) *DashboardController {
	return &DashboardController{DB: db, Tasks: tasks, Stock: stock}
}

// GetDashboard aggregates the headline numbers for the landing page.
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	var (
		projectCount  int64
		activeCount   int64
		machineCount  int64
		downMachines  int64
		openPoCount   int64
		materialCount int64
	)

	c.DB.Model(&models.Project{}).Count(&projectCount)
	c.DB.Model(&models.Project{}).Where("status = ?", models.ProjectStatusInProgress).Count(&activeCount)
	c.DB.Model(&models.Machine{}).Count(&machineCount)
	c.DB.Model(&models.Machine{}).Where("status IN ?", []string{models.MachineStatusMaintenance, models.MachineStatusDowntime}).Count(&downMachines)
	c.DB.Model(&models.PurchaseOrder{}).Where("status = ?", models.PoStatusOpen).Count(&openPoCount)
	c.DB.Model(&models.Material{}).Count(&materialCount)

	taskStats, err := c.Tasks.Statistics()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	lowStock, err := c.Stock.LowStock()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Dashboard data",
		"data": fiber.Map{
			"projects":           projectCount,
			"active_projects":    activeCount,
			"machines":           machineCount,
			"machines_down":      downMachines,
			"open_pos":           openPoCount,
			"materials":          materialCount,
			"low_stock_count":    len(lowStock),
			"low_stock":          lowStock,
			"task_statistics":    taskStats,
		},
	})
}
