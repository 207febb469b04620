package rbac_http

import (
	"geoshift/internal/middleware"
	"geoshift/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, service rbac.Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)

		group.GET("/roles", middleware.RBACAuthorize(service, rbac.ResourceRole, "read"), handler.ListRoles)
		group.GET("/permissions", middleware.RBACAuthorize(service, rbac.ResourceRole, "read"), handler.ListPermissions)
	}
}
