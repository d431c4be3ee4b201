package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-review-backend/internal/shared/apperror"
)

// ErrorBody is the only error shape the API emits.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// Success writes the resource itself as the body.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

// Error maps err to its status and public {message, code}.
func Error(c *gin.Context, err error) {
	code, message := apperror.Public(err)
	ErrorResponse(c, apperror.HTTPStatus(err), code, message)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{
		Message: message,
		Code:    code,
	})
}

// Common error responses
func BadRequest(c *gin.Context, code, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

func InternalServerError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, apperror.CodeInternal, "Internal server error")
}
