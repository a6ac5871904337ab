// migration/migrate.go
package migration

import (
	"mes-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Project{},
		&models.ProjectItem{},
		&models.Material{},
		&models.StockHistory{},
		&models.BomItem{},
		&models.Machine{},
		&models.Task{},
		&models.ProductionLog{},
		&models.SubAssembly{},
		&models.Supplier{},
		&models.Rfq{},
		&models.RfqItem{},
		&models.PurchaseOrder{},
		&models.PoItem{},
		&models.ReceivingGood{},
		&models.ReceivingItem{},
		&models.FinishedGoodsWarehouse{},
		&models.DeliveryOrder{},
		&models.DeliveryOrderItem{},
		&models.Backup{},
	)
}
