package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HammadCopilot/star-video-review/internal/models"
)

// RequireRoles aborts with 403 unless the authenticated user holds one of
// the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"}})
			return
		}
		role, ok := value.(models.Role)
		if !ok || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": gin.H{"code": "FORBIDDEN", "message": "Permission denied"}})
			return
		}
		c.Next()
	}
}
