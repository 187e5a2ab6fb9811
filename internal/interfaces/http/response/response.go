package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "farm-bridge.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// ErrorCodeKey is the gin context key under which Error records the stable
// error code, for the metrics middleware to pick up after the handler runs.
const ErrorCodeKey = "ledger_error_code"

// Error sends an error response with the domain error's stable code
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.Set(ErrorCodeKey, appErr.Code)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithCode sends an error response with a specific status and code
func ErrorWithCode(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
