package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
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

// Respond maps err onto the response. Anything that is not a BusinessError
// is attached to the context for the request logger and answered with a
// generic 500.
func Respond(c *gin.Context, err error) {
	be, ok := As(err)
	if !ok {
		_ = c.Error(err)
		Write(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	Write(c, StatusOf(be.Kind), be.Code, msg)
}

// Abort is Respond for middleware.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindUnsupported, KindInvalidToken:
		return http.StatusBadRequest
	case KindUnauthorized, KindRevoked:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState, KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
