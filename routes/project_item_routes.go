package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProjectItemRoutes(app *fiber.App, db *gorm.DB) {
	itemController := controllers.NewProjectItemController(db)

	api := app.Group(config.MAIN_ROUTES+"/project-items", middleware.AuthMiddleware(db))
	api.Get("/", itemController.GetAllProjectItems)
	api.Post("/", itemController.CreateProjectItem)
	api.Get("/:id", itemController.GetProjectItemByID)
	api.Put("/:id", itemController.UpdateProjectItem)
	api.Delete("/:id", itemController.DeleteProjectItem)
	api.Patch("/:id/lock-bom", itemController.LockBom)
	api.Patch("/:id/lock-workflow", itemController.LockWorkflow)
}
