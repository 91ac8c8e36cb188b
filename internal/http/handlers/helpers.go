package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/http/response"
)

// paramID читает id из пути. Формат уже проверен middleware.IDValidator.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "некорректный параметр "+name)
		return 0, false
	}
	return id, true
}

// queryID читает необязательный id из query. Пустое значение даёт nil.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "некорректный параметр "+name)
		return nil, false
	}
	return &id, true
}

// bindJSON разбирает тело запроса, при ошибке отвечает 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return false
	}
	return true
}

// fail передаёт ошибку в middleware.ErrorHandler.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// respondChanged отвечает 404, если запись отсутствовала.
func respondChanged(c *gin.Context, changed bool, notFound string, body interface{}) {
	if !changed {
		response.NotFound(c, notFound)
		return
	}
	if body == nil {
		c.Status(http.StatusNoContent)
		return
	}
	response.Success(c, body)
}
