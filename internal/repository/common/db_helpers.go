package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// GetByID - универсальная функция для получения сущности по ID.
// Возвращает nil, nil, если строки нет.
func GetByID[T any](ctx context.Context, q sqlx.ExtContext, table, columns string, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columns, table)
	return GetOne[T](ctx, q, query, id)
}

// GetOne выполняет запрос, возвращающий не более одной строки.
// Запрос пишется с плейсхолдерами ? и приводится к диалекту через Rebind.
func GetOne[T any](ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (*T, error) {
	var entity T
	if err := sqlx.GetContext(ctx, q, &entity, q.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Select выполняет запрос списка. Пустой результат возвращается пустым срезом, не nil.
func Select[T any](ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) ([]T, error) {
	items := make([]T, 0)
	if err := sqlx.SelectContext(ctx, q, &items, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return items, nil
}

// SelectIn как Select, но раскрывает срезы в аргументах для IN (?).
func SelectIn[T any](ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) ([]T, error) {
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expand in query: %w", err)
	}
	return Select[T](ctx, q, expanded, expandedArgs...)
}

// Exec выполняет запрос и возвращает число затронутых строк.
func Exec(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ExecIn как Exec, но раскрывает срезы в аргументах для IN (?).
func ExecIn(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return 0, fmt.Errorf("expand in query: %w", err)
	}
	return Exec(ctx, q, expanded, expandedArgs...)
}

// InsertReturningID выполняет INSERT ... RETURNING id.
func InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// BatchInserter - универсальная функция для массовой вставки.
// Устраняет N+1 проблемы при вставке в цикле.
type BatchInserter struct {
	tx          *sqlx.Tx
	query       string
	suffix      string
	batchSize   int
	values      []interface{}
	rowCount    int
	fieldsCount int
	total       int64
}

// NewBatchInserter создает новый batch inserter.
// suffix добавляется после VALUES, например "ON CONFLICT ... DO UPDATE ...".
func NewBatchInserter(tx *sqlx.Tx, baseQuery, suffix string, fieldsCount int, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		tx:          tx,
		query:       baseQuery,
		suffix:      suffix,
		batchSize:   batchSize,
		values:      make([]interface{}, 0, batchSize*fieldsCount),
		fieldsCount: fieldsCount,
	}
}

// Add добавляет строку для вставки.
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...interface{}) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("expected %d fields, got %d", bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	// Если достигли размера батча, выполняем вставку
	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}

	return nil
}

// Flush выполняет вставку накопленных значений.
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", bi.fieldsCount), ", ") + ")"
	placeholders := strings.TrimSuffix(strings.Repeat(row+", ", bi.rowCount), ", ")

	query := bi.query + " VALUES " + placeholders
	if bi.suffix != "" {
		query += " " + bi.suffix
	}

	res, err := bi.tx.ExecContext(ctx, bi.tx.Rebind(query), bi.values...)
	if err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		bi.total += n
	}

	// Очищаем буфер
	bi.values = bi.values[:0]
	bi.rowCount = 0

	return nil
}

// Total число строк, затронутых всеми выполненными вставками.
func (bi *BatchInserter) Total() int64 {
	return bi.total
}

// Nullable разыменовывает необязательное значение для передачи в запрос: nil становится NULL.
func Nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
