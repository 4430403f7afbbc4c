// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

// respondOK writes a success envelope
func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, apperr.OK(message, data))
}

// respondCreated writes a success envelope with 201
func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, apperr.OK(message, data))
}

// respondError maps an error to an HTTP status and writes the failure
// envelope
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), apperr.Fail(err))
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindOutOfStock:
		return http.StatusConflict
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondBindError wraps a gin binding failure as a validation error
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperr.Validation("invalid request data: %v", err))
}
