package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ishitasahu1112-gif/PrettyYou-Website/common/errors"
)

// respondError maps an application error to its HTTP status; the wrapped
// cause is surfaced as detail for client correction, the generic message as
// the error itself.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := gin.H{"error": appErr.Message}
	if appErr.Err != nil {
		resp["details"] = appErr.Err.Error()
	}
	c.JSON(appErr.Code, resp)
}
