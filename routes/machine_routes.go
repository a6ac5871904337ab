package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMachineRoutes(app *fiber.App, db *gorm.DB) {
	machineController := controllers.NewMachineController(db)

	api := app.Group(config.MAIN_ROUTES+"/machines", middleware.AuthMiddleware(db))
	api.Get("/", machineController.GetAllMachines)
	api.Post("/", machineController.CreateMachine)
	api.Get("/by-type/:type", machineController.GetMachinesByType)
	api.Get("/by-status/:status", machineController.GetMachinesByStatus)
	api.Get("/:id", machineController.GetMachineByID)
	api.Put("/:id", machineController.UpdateMachine)
	api.Delete("/:id", machineController.DeleteMachine)
	api.Patch("/:id/toggle-maintenance", machineController.ToggleMaintenance)
}
