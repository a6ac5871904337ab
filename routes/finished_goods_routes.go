package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupFinishedGoodsRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	warehouseController := controllers.NewFinishedGoodsController(db, svc.Warehouse)

	api := app.Group(config.MAIN_ROUTES+"/finished-goods", middleware.AuthMiddleware(db))
	api.Get("/", warehouseController.GetAllEntries)
	api.Post("/", warehouseController.CreateEntry)
	api.Get("/:id", warehouseController.GetEntryByID)
	api.Delete("/:id", warehouseController.DeleteEntry)
	api.Patch("/:id/produce", warehouseController.Produce)
	api.Patch("/:id/ship", warehouseController.Ship)
}
