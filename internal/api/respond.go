package api

import (
	"errors"
	"net/http"

	"leave_tracker/internal/domain" // Domain error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// respondErr maps a domain error onto an HTTP status and JSON body.
func respondErr(c *gin.Context, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	switch derr.Kind {
	case domain.KindValidation, domain.KindInsufficient, domain.KindIntegrityFault, domain.KindAlreadyProcessed:
		c.JSON(http.StatusBadRequest, gin.H{"error": derr.Message})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": derr.Message})
	case domain.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": derr.Message})
	default:
		// Store failures stay opaque to the caller.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
