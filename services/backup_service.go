package services

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"mes-app/config"
	"mes-app/controllers/idgen"
	"mes-app/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type BackupService struct {
	DB   *gorm.DB
	cron *cron.Cron
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{DB: db}
}

// BackupStats summarizes the backup history for the dashboard.
type BackupStats struct {
	Total      int64      `json:"total"`
	Completed  int64      `json:"completed"`
	Failed     int64      `json:"failed"`
	Pending    int64      `json:"pending"`
	TotalSize  int64      `json:"total_size"`
	LastBackup *time.Time `json:"last_backup"`
}

// StartScheduler runs a nightly full backup at 02:00.
func (s *BackupService) StartScheduler() {
	s.cron = cron.New()
	_, err := s.cron.AddFunc("0 2 * * *", func() {
		if _, err := s.Create("scheduler"); err != nil {
			log.Error().Err(err).Msg("scheduled backup failed")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to register backup schedule")
		return
	}
	s.cron.Start()
	log.Info().Msg("backup scheduler started")
}

// StopScheduler stops the cron loop, waiting for a running job to finish.
func (s *BackupService) StopScheduler() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Create records a pending backup, runs the database dump and settles the row
// to completed or failed.
func (s *BackupService) Create(createdBy string) (*models.Backup, error) {
	filename := fmt.Sprintf("backup_%s_%d.sql", time.Now().Format("20060102_150405"), idgen.GenerateID())
	backup := models.Backup{
		Filename:  filename,
		Path:      filepath.Join(config.BackupDir, filename),
		Disk:      "local",
		Status:    models.BackupStatusPending,
		Type:      "full",
		CreatedBy: createdBy,
	}
	if err := s.DB.Create(&backup).Error; err != nil {
		return nil, err
	}

	if err := s.run(&backup); err != nil {
		backup.Status = models.BackupStatusFailed
		s.DB.Save(&backup)
		log.Error().Err(err).Str("filename", backup.Filename).Msg("backup failed")
		return &backup, nil
	}

	if info, err := os.Stat(backup.Path); err == nil {
		backup.Size = info.Size()
	}
	backup.Status = models.BackupStatusCompleted
	if err := s.DB.Save(&backup).Error; err != nil {
		return nil, err
	}

	log.Info().Str("filename", backup.Filename).Int64("size", backup.Size).Msg("backup completed")
	return &backup, nil
}

func (s *BackupService) run(backup *models.Backup) error {
	if err := os.MkdirAll(config.BackupDir, 0o755); err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch config.DBDriver {
	case "postgres":
		cmd = exec.Command("pg_dump",
			"-h", config.DBHost,
			"-p", config.DBPort,
			"-U", config.DBUser,
			"-f", backup.Path,
			config.DBName,
		)
		cmd.Env = append(os.Environ(), "PGPASSWORD="+config.DBPassword)
	case "mysql":
		cmd = exec.Command("mysqldump",
			"-h", config.DBHost,
			"-P", config.DBPort,
			"-u", config.DBUser,
			"-p"+config.DBPassword,
			"-r", backup.Path,
			config.DBName,
		)
	default:
		return fmt.Errorf("backup not supported for driver %s", config.DBDriver)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("dump failed: %w: %s", err, out)
	}
	return nil
}

// Get returns one backup row.
func (s *BackupService) Get(id uint) (*models.Backup, error) {
	var backup models.Backup
	if err := s.DB.First(&backup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &backup, nil
}

// Delete removes the backup row and its file from disk.
func (s *BackupService) Delete(id uint) error {
	backup, err := s.Get(id)
	if err != nil {
		return err
	}
	if backup.Path != "" {
		if err := os.Remove(backup.Path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", backup.Path).Msg("failed to remove backup file")
		}
	}
	return s.DB.Delete(backup).Error
}

// Stats aggregates counts and sizes over the backup history.
func (s *BackupService) Stats() (*BackupStats, error) {
	var stats BackupStats

	if err := s.DB.Model(&models.Backup{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		models.BackupStatusCompleted: &stats.Completed,
		models.BackupStatusFailed:    &stats.Failed,
		models.BackupStatusPending:   &stats.Pending,
	}
	for status, dest := range counts {
		if err := s.DB.Model(&models.Backup{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, err
		}
	}

	if err := s.DB.Model(&models.Backup{}).
		Where("status = ?", models.BackupStatusCompleted).
		Select("COALESCE(SUM(size), 0)").
		Scan(&stats.TotalSize).Error; err != nil {
		return nil, err
	}

	var last models.Backup
	err := s.DB.Where("status = ?", models.BackupStatusCompleted).
		Order("created_at desc").
		First(&last).Error
	if err == nil {
		stats.LastBackup = &last.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &stats, nil
}
