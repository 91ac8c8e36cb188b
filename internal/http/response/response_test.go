package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

func render(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError_MapsAppErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   apperror.ErrorCode
	}{
		{apperror.ErrGroupNotFound, http.StatusNotFound, apperror.ErrCodeNotFound},
		{apperror.Validation("уровень должен быть от 1 до 5"), http.StatusBadRequest, apperror.ErrCodeValidation},
		{apperror.Duplicate("группа уже существует", nil), http.StatusConflict, apperror.ErrCodeConflict},
		{apperror.Persistence("group.list", errors.New("disk")), http.StatusInternalServerError, apperror.ErrCodeDatabaseError},
	}

	for _, tc := range cases {
		status, body := render(t, tc.err)
		assert.Equal(t, tc.status, status)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, string(tc.code), body.Error.Code)
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	_, body := render(t, apperror.Persistence("group.list", errors.New("disk I/O error")))
	assert.Equal(t, "внутренняя ошибка сервера", body.Error.Message)

	status, body := render(t, errors.New("sql: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, string(apperror.ErrCodeInternal), body.Error.Code)
	assert.NotContains(t, body.Error.Message, "sql")
}
