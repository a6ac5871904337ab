package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	userController := controllers.NewUserController(db)

	api := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware(db))
	api.Get("/", userController.GetAllUsers)
	api.Post("/", userController.CreateUser)
	api.Get("/:id", userController.GetUserByID)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)
}
