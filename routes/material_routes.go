package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMaterialRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	materialController := controllers.NewMaterialController(db, svc.Stock)

	api := app.Group(config.MAIN_ROUTES+"/materials", middleware.AuthMiddleware(db))
	api.Post("/upload-excel", materialController.CreateMaterialFromExcel)
	api.Get("/export", materialController.ExportMaterials)
	api.Get("/low-stock", materialController.GetLowStock)
	api.Get("/", materialController.GetAllMaterials)
	api.Post("/", materialController.CreateMaterial)
	api.Get("/:id", materialController.GetMaterialByID)
	api.Put("/:id", materialController.UpdateMaterial)
	api.Delete("/:id", materialController.DeleteMaterial)
	api.Patch("/:id/stock", materialController.UpdateStock)
	api.Get("/:id/stock-history", materialController.GetStockHistory)
}
