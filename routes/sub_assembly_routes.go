package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSubAssemblyRoutes(app *fiber.App, db *gorm.DB) {
	subAssemblyController := controllers.NewSubAssemblyController(db)

	api := app.Group(config.MAIN_ROUTES+"/sub-assemblies", middleware.AuthMiddleware(db))
	api.Get("/", subAssemblyController.GetAllSubAssemblies)
	api.Post("/", subAssemblyController.CreateSubAssembly)
	api.Get("/:id", subAssemblyController.GetSubAssemblyByID)
	api.Put("/:id", subAssemblyController.UpdateSubAssembly)
	api.Delete("/:id", subAssemblyController.DeleteSubAssembly)
}
