package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/skillmatrix/skill-matrix/internal/clock"
	"github.com/skillmatrix/skill-matrix/internal/domain/repository"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
)

// SystemService сведения о базе и резервные копии.
type SystemService struct {
	repo      repository.SystemRepository
	clock     clock.Clock
	backupDir string
}

func NewSystemService(repo repository.SystemRepository, clk clock.Clock, backupDir string) *SystemService {
	return &SystemService{repo: repo, clock: clk, backupDir: backupDir}
}

// BackupFileName имя файла резервной копии: backup_YYYYmmdd_HHMMSS.db.
func BackupFileName(t time.Time) string {
	return "backup_" + t.Format("20060102_150405") + ".db"
}

// Info возвращает драйвер, версию схемы и число записей.
func (s *SystemService) Info(ctx context.Context) (*models.SystemInfo, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := s.repo.Schema(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SystemInfo{Driver: s.repo.Driver(), Schema: schema, Counts: *counts}, nil
}

// Backup копирует базу в dest. Пустой dest означает файл с отметкой времени в каталоге копий.
// Возвращает путь созданного файла.
func (s *SystemService) Backup(ctx context.Context, dest string) (string, error) {
	if dest == "" {
		dest = filepath.Join(s.backupDir, BackupFileName(s.clock.Now()))
	}
	if err := s.repo.Backup(ctx, dest); err != nil {
		return "", err
	}
	logger.Log.WithField("path", dest).Info("резервная копия базы создана")
	return dest, nil
}
