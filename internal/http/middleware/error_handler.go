package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

// ErrorHandler логирует ошибки запроса и, если ответ ещё не отправлен, отвечает конвертом ошибки.
// Паника в обработчике превращается в INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithFields(logrus.Fields{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"panic":  r,
				}).Error("panic при обработке запроса")
				if !c.Writer.Written() {
					response.Error(c, apperror.New(apperror.ErrCodeInternal, "panic"))
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		entry := logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"code":   apperror.CodeOf(err),
		})
		if isServerError(err) {
			entry.Error("ошибка запроса")
		} else {
			entry.Info("ошибка запроса")
		}

		if !c.Writer.Written() {
			response.Error(c, err)
		}
	}
}

func isServerError(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return true
	}
	return appErr.HTTPStatus >= http.StatusInternalServerError
}
