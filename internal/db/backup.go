package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

// Backup снимает согласованную копию базы sqlite в файл dest без остановки работы.
// Существующий файл не перезаписывается. Для postgres копия делается средствами сервера.
func (s *Store) Backup(ctx context.Context, dest string) error {
	if s.dialect != DialectSQLite {
		return apperror.Validation("резервное копирование поддерживается только для sqlite, для postgres используйте pg_dump")
	}
	if dest == "" {
		return apperror.Validation("путь резервной копии не задан")
	}
	if _, err := os.Stat(dest); err == nil {
		return apperror.Duplicate(fmt.Sprintf("файл %s уже существует", dest), nil)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("db: проверка %s: %w", dest, err)
	}
	if dir := filepath.Dir(dest); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("db: не удалось создать каталог %s: %w", dir, err)
		}
	}

	// VACUUM нельзя выполнять внутри транзакции
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return ClassifyError("db.backup", err)
	}

	logger.Log.WithField("path", dest).Debug("db: VACUUM INTO выполнен")
	return nil
}
