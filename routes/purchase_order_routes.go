package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPurchaseOrderRoutes(app *fiber.App, db *gorm.DB) {
	poController := controllers.NewPurchaseOrderController(db)

	api := app.Group(config.MAIN_ROUTES+"/purchase-orders", middleware.AuthMiddleware(db))
	api.Get("/", poController.GetAllPurchaseOrders)
	api.Post("/", poController.CreatePurchaseOrder)
	api.Get("/:id", poController.GetPurchaseOrderByID)
	api.Put("/:id", poController.UpdatePurchaseOrder)
	api.Delete("/:id", poController.DeletePurchaseOrder)
	api.Post("/items", poController.AddPoItem)
	api.Delete("/items/:itemId", poController.DeletePoItem)
}
