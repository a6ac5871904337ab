package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReceivingRoutes(app *fiber.App, db *gorm.DB) {
	receivingController := controllers.NewReceivingController(db)

	api := app.Group(config.MAIN_ROUTES+"/receivings", middleware.AuthMiddleware(db))
	api.Get("/", receivingController.GetAllReceivings)
	api.Post("/", receivingController.CreateReceiving)
	api.Get("/:id", receivingController.GetReceivingByID)
	api.Delete("/:id", receivingController.DeleteReceiving)
	api.Post("/items", receivingController.AddReceivingItem)
}
