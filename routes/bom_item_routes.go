package routes

import (
	"mes-app/config"
	"mes-app/controllers"
	"mes-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupBomItemRoutes(app *fiber.App, db *gorm.DB, svc Services) {
	bomController := controllers.NewBomItemController(db, svc.Bom)

	api := app.Group(config.MAIN_ROUTES+"/bom-items", middleware.AuthMiddleware(db))
	api.Get("/", bomController.GetAllBomItems)
	api.Post("/", bomController.CreateBomItem)
	api.Get("/:id", bomController.GetBomItemByID)
	api.Put("/:id", bomController.UpdateBomItem)
	api.Delete("/:id", bomController.DeleteBomItem)
	api.Patch("/:id/allocate", bomController.Allocate)
	api.Patch("/:id/realize", bomController.Realize)
}
