package middleware

import (
	"net/http" // HTTP status codes

	"leave_tracker/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Principal extracts the authenticated principal the JWT middleware put
// into the context.
func Principal(c *gin.Context) (domain.Principal, bool) {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := val.(domain.Principal)
	return p, ok
}

// AdminOnlyMiddleware checks the user's role from the database on each
// request, so a revoked admin role takes effect before the token expires.
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c) // Get principal from context
		// Check if principal exists in context
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, p.UserID).Error; err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if user role is admin
		if user.Role != domain.RoleAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
