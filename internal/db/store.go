package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skillmatrix/skill-matrix/internal/logger"
)

// Dialect диалект SQL подключённого хранилища.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Options параметры открытия хранилища.
type Options struct {
	Driver string
	// Path путь к файлу sqlite.
	Path string
	// DSN строка подключения postgres.
	DSN string
}

// Store обёртка над подключением, через которую проходят все операции репозиториев.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open открывает хранилище и применяет схему.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		store *Store
		err   error
	)

	switch Dialect(opts.Driver) {
	case DialectSQLite, "":
		store, err = OpenSQLite(ctx, opts.Path)
	case DialectPostgres:
		store, err = NewPostgres(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("db: неизвестный драйвер %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}

// OpenSQLite открывает файловое хранилище sqlite, создавая каталоги при необходимости.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: путь к базе не задан")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: не удалось создать каталог %s: %w", dir, err)
		}
	}

	conn, err := sqlx.ConnectContext(ctx, sqliteDriverName, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: не удалось открыть %s: %w", path, err)
	}

	// Один писатель: все операции идут через одно соединение.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	logger.Log.WithField("path", path).Debug("sqlite: база открыта")
	return &Store{db: conn, dialect: DialectSQLite}, nil
}

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string) (*Store, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: conn, dialect: DialectPostgres}, nil
}

// NewStore оборачивает готовое подключение. Используется в тестах с sqlmock.
func NewStore(conn *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: conn, dialect: dialect}
}

// DB возвращает подключение.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect возвращает диалект хранилища.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping проверяет доступность хранилища.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает подключение.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике.
// Ошибки, не являющиеся AppError, классифицируются через ClassifyError.
func (s *Store) WithTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return ClassifyError(op, fmt.Errorf("begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			// При панике откатываем транзакцию
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Op(op).WithError(rbErr).Warn("db: ошибка отката транзакции")
		}
		return ClassifyError(op, err)
	}

	if err := tx.Commit(); err != nil {
		return ClassifyError(op, fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}

// InTx выполняет fn через WithTx и возвращает её результат.
func InTx[T any](ctx context.Context, s *Store, op string, fn func(tx *sqlx.Tx) (T, error)) (T, error) {
	var result T
	err := s.WithTx(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		result, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
