package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProjectRoutes(app *fiber.App, db *gorm.DB) {
	projectController := controllers.NewProjectController(db)

	api := app.Group(config.MAIN_ROUTES+"/projects", middleware.AuthMiddleware(db))
	api.Get("/", projectController.GetAllProjects)
	api.Post("/", projectController.CreateProject)
	api.Get("/:id", projectController.GetProjectByID)
	api.Put("/:id", projectController.UpdateProject)
	api.Delete("/:id", projectController.DeleteProject)
	api.Patch("/:id/toggle-lock", projectController.ToggleLock)
}
