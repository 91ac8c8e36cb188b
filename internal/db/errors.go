package db

import (
	"database/sql"
	"errors"

	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintForeignKey
	constraintCheck
)

// ClassifyError переводит ошибку драйвера в таксономию apperror.
// Нарушение уникальности становится Duplicate, нарушение внешнего ключа и check
// становятся Validation, всё остальное является Persistence и пишется в лог.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.From(err); ok {
		return err
	}

	switch constraintOf(err) {
	case constraintUnique:
		return apperror.Duplicate("запись с такими ключевыми полями уже существует", err)
	case constraintForeignKey:
		return apperror.Wrap(err, apperror.ErrCodeValidation, "ссылка на несуществующую запись")
	case constraintCheck:
		return apperror.Wrap(err, apperror.ErrCodeValidation, "значение нарушает ограничение схемы")
	}

	logger.Op(op).WithError(err).Error("db: ошибка хранилища")
	return apperror.Persistence(op, err)
}

func constraintOf(err error) constraintKind {
	if kind := sqliteConstraint(err); kind != constraintNone {
		return kind
	}
	return postgresConstraint(err)
}

// IsNoRows сообщает, что запрос не вернул строк.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation сообщает, что ошибка драйвера является нарушением уникальности.
func IsUniqueViolation(err error) bool {
	return constraintOf(err) == constraintUnique
}
