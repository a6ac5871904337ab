package routes

import (
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Services bundles the domain services shared by the route groups.
type Services struct {
	Tasks     *services.TaskService
	Stock     *services.StockService
	Bom       *services.BomService
	Warehouse *services.WarehouseService
	Logs      *services.ProductionLogService
	Backups   *services.BackupService
}

// Setup registers every route group on the app.
func Setup(app *fiber.App, db *gorm.DB, svc Services) {
	SetupAuthRoutes(app, db)
	SetupUserRoutes(app, db)
	SetupDashboardRoutes(app, db, svc)
	SetupProjectRoutes(app, db)
	SetupProjectItemRoutes(app, db)
	SetupMaterialRoutes(app, db, svc)
	SetupBomItemRoutes(app, db, svc)
	SetupMachineRoutes(app, db)
	SetupTaskRoutes(app, db, svc)
	SetupProductionLogRoutes(app, db, svc)
	SetupSubAssemblyRoutes(app, db)
	SetupSupplierRoutes(app, db)
	SetupRfqRoutes(app, db)
	SetupPurchaseOrderRoutes(app, db)
	SetupReceivingRoutes(app, db)
	SetupFinishedGoodsRoutes(app, db, svc)
	SetupDeliveryOrderRoutes(app, db, svc)
	SetupBackupRoutes(app, db, svc)
}
