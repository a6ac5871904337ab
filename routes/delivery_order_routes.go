package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDeliveryOrderRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	doController := controllers.NewDeliveryOrderController(db, svc.Warehouse)

	api := app.Group(config.MAIN_ROUTES+"/delivery-orders", middleware.AuthMiddleware(db))
	api.Get("/", doController.GetAllDeliveryOrders)
	api.Post("/", doController.CreateDeliveryOrder)
	api.Get("/:id", doController.GetDeliveryOrderByID)
	api.Put("/:id", doController.UpdateDeliveryOrder)
	api.Delete("/:id", doController.DeleteDeliveryOrder)
	api.Post("/items", doController.AddDeliveryItem)
	api.Delete("/items/:itemId", doController.DeleteDeliveryItem)
}
