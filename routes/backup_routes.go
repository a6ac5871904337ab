package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupBackupRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	backupController := controllers.NewBackupController(db, svc.Backups)

	api := app.Group(config.MAIN_ROUTES+"/backups", middleware.AuthMiddleware(db))
	api.Get("/stats", backupController.GetStats)
	api.Get("/", backupController.GetAllBackups)
	api.Post("/", backupController.CreateBackup)
	api.Get("/:id", backupController.GetBackupByID)
	api.Delete("/:id", backupController.DeleteBackup)
	api.Get("/:id/download", backupController.DownloadBackup)
}
