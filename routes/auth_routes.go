package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)

	protected := app.Group(config.MAIN_ROUTES+"/auth", middleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/profile", authController.Profile)
	protected.Get("/check", authController.IsLoggedIn)
}
