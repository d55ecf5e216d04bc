package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACService adalah interface lokal: package apapun yang punya method
// Enforce(role, resource, action) bisa dipakai di sini.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}

		c.Set("has_read_all", isPrivilegedRole(role))
		c.Next()
	}
}

func isPrivilegedRole(role string) bool {
	switch role {
	case "SUPER_ADMIN", "ADMIN", "HR", "MANAGER":
		return true
	default:
		return false
	}
}
