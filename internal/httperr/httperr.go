package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a use-case error onto an HTTP response. Anything that is not
// a BusinessError is logged and reported as an opaque 500.
func FromError(c *gin.Context, err error) {
	be, ok := As(err)
	if !ok {
		zap.L().Error("unhandled error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, be.Error())
	case KindInvalidArgument:
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    be.Code,
			Message: be.Reason,
			Field:   be.Field,
		})
	case KindConflict:
		Conflict(c, be.Code, be.Error())
	case KindForbidden:
		Forbidden(c, be.Code, "Operation not allowed.")
	default:
		zap.L().Error("transaction failure",
			zap.String("path", c.FullPath()),
			zap.Error(be.Cause),
		)
		Internal(c, be.Code, "Storage failure.")
	}
}
