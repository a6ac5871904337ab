package database

import (
	"errors"

	"mes-app/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders populates the master data needed for a fresh install. Every
// seeder is idempotent.
func RunSeeders(db *gorm.DB) {
	SeedAdminUser(db)
	SeedMachines(db)
	SeedMaterials(db)
}

func SeedAdminUser(db *gorm.DB) {
	var existing models.User
	err := db.Where("email = ?", "admin@mes.local").First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("failed to check admin user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@mes.local",
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}
}

func SeedMachines(db *gorm.DB) {
	machines := []models.Machine{
		{Code: "PTG-01", Name: "Cutting Machine 1", Type: "POTONG", CapacityPerHour: 120},
		{Code: "PLG-01", Name: "Punching Machine 1", Type: "PLONG", CapacityPerHour: 100},
		{Code: "PRS-01", Name: "Press Machine 1", Type: "PRESS", CapacityPerHour: 80},
		{Code: "LSP-01", Name: "Spot Welding Station 1", Type: "LASPEN", CapacityPerHour: 60},
		{Code: "MIG-01", Name: "MIG Welding Station 1", Type: "LAS_MIG", CapacityPerHour: 50},
		{Code: "PHS-01", Name: "Phosphating Line 1", Type: "PHOSPATHING", CapacityPerHour: 200},
		{Code: "PWD-01", Name: "Powder Coating Line 1", Type: "POWDER", CapacityPerHour: 150},
		{Code: "PCK-01", Name: "Packing Station 1", Type: "PACKING", CapacityPerHour: 100},
	}

	for _, m := range machines {
		var existing models.Machine
		if err := db.Where("code = ?", m.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&m)
			}
		}
	}
}

func SeedMaterials(db *gorm.DB) {
	materials := []models.Material{
		{Code: "RAW-PLT-1.2", Name: "Steel Plate 1.2mm", Unit: "sheet", CurrentStock: 100, SafetyStock: 20, Category: models.MaterialCategoryRaw},
		{Code: "RAW-PLT-2.0", Name: "Steel Plate 2.0mm", Unit: "sheet", CurrentStock: 80, SafetyStock: 20, Category: models.MaterialCategoryRaw},
		{Code: "FIN-PWD-BLK", Name: "Powder Coating Black", Unit: "kg", CurrentStock: 50, SafetyStock: 10, Category: models.MaterialCategoryFinishing},
		{Code: "HRD-BLT-M8", Name: "Bolt M8x20", Unit: "pcs", CurrentStock: 1000, SafetyStock: 200, Category: models.MaterialCategoryHardware},
	}

	for _, m := range materials {
		var existing models.Material
		if err := db.Where("code = ?", m.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&m)
			}
		}
	}
}
