package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"book-review-backend/internal/shared/apperror"
	"book-review-backend/internal/shared/response"
)

// ParamUUID parses the named path parameter. On failure it writes a 400
// and returns false; the handler should return immediately.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, apperror.CodeInvalidID, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes the request body into dst. On failure it writes a 400
// and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, apperror.CodeInvalidBody, "Invalid request body")
		return false
	}
	return true
}
