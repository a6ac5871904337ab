package controllers

import (
	"strconv"

	"mes-app/controllers/helpers"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BackupController struct {
	DB      *gorm.DB
	Backups *services.BackupService
}

func NewBackupController(db *gorm.DB, backups *services.BackupService) *BackupController {
	return &BackupController{DB: db, Backups: backups}
}

func (c *BackupController) GetAllBackups(ctx *fiber.Ctx) error {
	var backups []models.Backup
	if err := c.DB.Order("created_at desc").Find(&backups).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Backups found", "data": backups})
}

func (c *BackupController) GetBackupByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	backup, err := c.Backups.Get(uint(id))
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Backup found", "data": backup})
}

// CreateBackup runs a manual database dump.
func (c *BackupController) CreateBackup(ctx *fiber.Ctx) error {
	createdBy := ""
	if userID, ok := ctx.Locals("userID").(float64); ok {
		createdBy = strconv.Itoa(int(userID))
	}

	backup, err := c.Backups.Create(createdBy)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Backup started", "data": backup})
}

func (c *BackupController) DeleteBackup(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.Backups.Delete(uint(id)); err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Backup deleted successfully"})
}

// GetStats summarizes the backup history.
func (c *BackupController) GetStats(ctx *fiber.Ctx) error {
	stats, err := c.Backups.Stats()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Backup statistics", "data": stats})
}

// DownloadBackup streams the backup file.
func (c *BackupController) DownloadBackup(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	backup, err := c.Backups.Get(uint(id))
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	if backup.Status != models.BackupStatusCompleted {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Backup is not completed"})
	}

	return ctx.Download(backup.Path, backup.Filename)
}
