package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTaskRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	taskController := controllers.NewTaskController(db, svc.Tasks)

	api := app.Group(config.MAIN_ROUTES+"/tasks", middleware.AuthMiddleware(db))
	api.Get("/statistics", taskController.GetStatistics)
	api.Get("/", taskController.GetAllTasks)
	api.Post("/", taskController.CreateTask)
	api.Get("/:id", taskController.GetTaskByID)
	api.Put("/:id", taskController.UpdateTask)
	api.Delete("/:id", taskController.DeleteTask)
	api.Patch("/:id/status", taskController.UpdateStatus)
	api.Patch("/:id/quantities", taskController.UpdateQuantities)
	api.Patch("/:id/start-downtime", taskController.StartDowntime)
	api.Patch("/:id/end-downtime", taskController.EndDowntime)
}
