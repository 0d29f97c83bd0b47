package handler

import (
	"errors"
	"net/http"

	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler is the terminal sink for any fault no route handled itself.
// It logs the full detail server-side, derives the status code from a tagged
// echo.HTTPError (500 otherwise) and emits the uniform error envelope.
func ErrorHandler(err error, c echo.Context) {
	log := logger.FromContext(c)

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	log.Error("Unhandled request error",
		zap.Int("status", code),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err))

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{
		"status":  "error",
		"message": message,
	})
}
