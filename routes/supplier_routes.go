package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSupplierRoutes(app *fiber.App, db *gorm.DB) {
	supplierController := controllers.NewSupplierController(db)

	api := app.Group(config.MAIN_ROUTES+"/suppliers", middleware.AuthMiddleware(db))
	api.Get("/", supplierController.GetAllSuppliers)
	api.Post("/", supplierController.CreateSupplier)
	api.Get("/:id", supplierController.GetSupplierByID)
	api.Put("/:id", supplierController.UpdateSupplier)
	api.Delete("/:id", supplierController.DeleteSupplier)
}
