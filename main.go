package main

import (
	"mes-app/config"
	"mes-app/controllers/idgen"
	"mes-app/database"
	"mes-app/logger"
	"mes-app/middleware"
	"mes-app/migration"
	"mes-app/routes"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadConfig()
	logger.Init("mes-app", config.AppEnv == "development")

	if err := database.EnsureDatabaseExists(); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database exists")
	}

	db, err := database.OpenDatabaseConnection()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate")
	}

	database.RunSeeders(db)
	idgen.Init()

	mailer := services.NewMailService()
	svc := routes.Services{
		Tasks:     services.NewTaskService(db),
		Stock:     services.NewStockService(db, mailer),
		Bom:       services.NewBomService(db),
		Warehouse: services.NewWarehouseService(db),
		Logs:      services.NewProductionLogService(db),
		Backups:   services.NewBackupService(db),
	}

	svc.Backups.StartScheduler()
	defer svc.Backups.StopScheduler()

	app := fiber.New()
	app.Use(middleware.RequestLogger())
	config.SetupCORS(app)

	routes.Setup(app, db, svc)

	log.Info().Str("port", config.APP_PORT).Msg("server starting")
	if err := app.Listen(":" + config.APP_PORT); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
