package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRfqRoutes(app *fiber.App, db *gorm.DB) {
	rfqController := controllers.NewRfqController(db)

	api := app.Group(config.MAIN_ROUTES+"/rfqs", middleware.AuthMiddleware(db))
	api.Get("/", rfqController.GetAllRfqs)
	api.Post("/", rfqController.CreateRfq)
	api.Get("/:id", rfqController.GetRfqByID)
	api.Put("/:id", rfqController.UpdateRfq)
	api.Delete("/:id", rfqController.DeleteRfq)
	api.Post("/:id/create-po", rfqController.CreatePurchaseOrder)
	api.Post("/items", rfqController.AddRfqItem)
	api.Delete("/items/:itemId", rfqController.DeleteRfqItem)
}
