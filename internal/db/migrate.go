package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/skillmatrix/skill-matrix/internal/logger"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// EnsureSchema применяет встроенные миграции для диалекта хранилища.
// Каждая миграция идемпотентна и выполняется в отдельной транзакции.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.initMigrationsTable(ctx); err != nil {
		return fmt.Errorf("db: не удалось инициализировать таблицу миграций: %w", err)
	}

	dir := path.Join("migrations", string(s.dialect))
	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return fmt.Errorf("db: не удалось прочитать каталог миграций %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		name := entry.Name()
		applied, err := s.isMigrationApplied(ctx, name)
		if err != nil {
			return fmt.Errorf("db: не удалось проверить статус миграции %s: %w", name, err)
		}
		if applied {
			continue
		}

		if err := s.applyMigration(ctx, path.Join(dir, name), name); err != nil {
			return err
		}
		logger.Log.WithField("migration", name).Info("db: миграция применена")
	}

	return nil
}

// AppliedMigrations возвращает имена применённых миграций.
func (s *Store) AppliedMigrations(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, `SELECT name FROM schema_migrations ORDER BY name`)
	return names, err
}

func (s *Store) initMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if s.dialect == DialectSQLite {
		query = `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				name TEXT PRIMARY KEY,
				applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`
	}
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *Store) isMigrationApplied(ctx context.Context, name string) (bool, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
	if err := s.db.GetContext(ctx, &count, query, name); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) applyMigration(ctx context.Context, file, name string) error {
	sqlBytes, err := migrationFiles.ReadFile(file)
	if err != nil {
		return fmt.Errorf("db: не удалось прочитать миграцию %s: %w", file, err)
	}

	return s.WithTx(ctx, "db.migrate."+name, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("выполнение миграции %s: %w", name, err)
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations (name) VALUES (?)`), name)
		return err
	})
}
