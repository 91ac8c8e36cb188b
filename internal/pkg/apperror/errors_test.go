package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Predicates(t *testing.T) {
	cause := errors.New("disk full")

	assert.True(t, IsValidation(Validation("уровень %d вне диапазона", 7)))
	assert.True(t, IsDuplicate(Duplicate("дубликат", cause)))
	assert.True(t, IsNotFound(NotFound("нет %s", "группы")))
	assert.True(t, IsPersistence(Persistence("group.create", cause)))
	assert.False(t, IsNotFound(cause))
}

func TestAppError_WrappedChain(t *testing.T) {
	err := fmt.Errorf("service: %w", ErrSkillNotFound)

	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrSkillNotFound))
	assert.False(t, errors.Is(err, ErrGroupNotFound))
}

func TestAppError_PersistenceCarriesOp(t *testing.T) {
	cause := errors.New("database is locked")
	err := Persistence("category.delete", cause)

	assert.Equal(t, "category.delete", err.Op)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.Contains(t, err.Error(), "category.delete")
	assert.ErrorIs(t, err, cause)
}

func TestAppError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("x").HTTPStatus)
	assert.Equal(t, http.StatusConflict, Duplicate("x", nil).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, NotFound("x").HTTPStatus)
}
