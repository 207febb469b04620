package middleware

import (
	"net/http"

	"geoshift/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize gates a route on a resource/action pair for the
// authenticated user within their organization.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok1 := c.Get(string(rbac.ContextUserID))
		organizationID, ok2 := c.Get(string(rbac.ContextOrganizationID))

		if !ok1 || !ok2 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		req := rbac.EnforceRequest{
			UserID:         userID.(string),
			OrganizationID: organizationID.(string),
			Resource:       resource,
			Action:         action,
		}

		allowed, err := service.Enforce(req)
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
		c.Next()
	}
}
