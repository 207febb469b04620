package outofrange

import (
	"geoshift/internal/middleware"
	"geoshift/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	requests := r.Group("/out-of-range-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "out_of_range_request", "create"), handler.Submit)
		requests.GET("", middleware.RBACAuthorize(rbacService, "out_of_range_request", "read"), handler.ListMine)
		requests.GET("/pending", middleware.RBACAuthorize(rbacService, "out_of_range_request", "approve"), handler.ListPending)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "out_of_range_request", "approve"), handler.Approve)
		requests.POST("/:id/deny", middleware.RBACAuthorize(rbacService, "out_of_range_request", "approve"), handler.Deny)
	}
}
