package db

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE нарушений ограничений.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqNotNullViolation    = "23502"
)

func postgresConstraint(err error) constraintKind {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return constraintNone
	}

	switch string(pqErr.Code) {
	case pqUniqueViolation:
		return constraintUnique
	case pqForeignKeyViolation:
		return constraintForeignKey
	case pqCheckViolation, pqNotNullViolation:
		return constraintCheck
	}
	return constraintNone
}
