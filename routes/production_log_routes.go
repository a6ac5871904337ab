package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProductionLogRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	logController := controllers.NewProductionLogController(db, svc.Logs)

	api := app.Group(config.MAIN_ROUTES+"/production-logs", middleware.AuthMiddleware(db))
	api.Get("/summary", logController.GetSummary)
	api.Get("/export", logController.ExportLogs)
	api.Get("/", logController.GetAllLogs)
	api.Post("/", logController.CreateLog)
	api.Get("/:id", logController.GetLogByID)
	api.Put("/:id", logController.UpdateLog)
	api.Delete("/:id", logController.DeleteLog)
}
