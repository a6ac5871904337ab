package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	dashboardController := controllers.NewDashboardController(db, svc.Tasks, svc.Stock)

	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware(db))
	api.Get("/", dashboardController.GetDashboard)
}
