package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

// ErrorHandler отвечает на ошибки, добавленные обработчиком через c.Error.
// Внутренние ошибки логируются и маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		fields := logrus.Fields{
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		}
		if appErr, ok := apperror.From(err); !ok || appErr.Code == apperror.ErrCodeDatabaseError || appErr.Code == apperror.ErrCodeInternal {
			logger.Log.WithFields(fields).WithError(err).Error("http: ошибка запроса")
		} else {
			logger.Log.WithFields(fields).WithError(err).Debug("http: ошибка запроса")
		}

		response.Error(c, err)
	}
}
