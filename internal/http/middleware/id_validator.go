package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/http/response"
)

// IDValidator проверяет, что параметр пути является положительным целым id.
// Использование: router.GET("/groups/:id", IDValidator("id"), handler.GetGroup)
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		if raw == "" {
			response.BadRequest(c, "параметр "+paramName+" обязателен")
			c.Abort()
			return
		}

		if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
			response.BadRequest(c, "параметр "+paramName+" должен быть положительным целым числом")
			c.Abort()
			return
		}

		c.Next()
	}
}
