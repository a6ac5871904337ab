package database

import (
	"fmt"
	"mes-app/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// OpenDatabaseConnection opens the application database using the configured driver.
func OpenDatabaseConnection() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBName, config.DBPort)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)
		dialector = mysql.Open(dsn)
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)
		dialector = sqlserver.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", config.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Info().Str("driver", config.DBDriver).Str("database", config.DBName).Msg("connected to database")
	return db, nil
}

// EnsureDatabaseExists creates the configured database if it does not exist.
// Supported for postgres and mysql; mssql deployments are expected to provision
// the database up front.
func EnsureDatabaseExists() error {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		var count int64
		if err := db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", config.DBName).Scan(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, config.DBName)).Error; err != nil {
				return err
			}
			log.Info().Str("database", config.DBName).Msg("database created")
		}
		return nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", config.DBName)).Error
	default:
		return nil
	}
}
