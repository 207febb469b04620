package shift

import (
	"geoshift/internal/middleware"
	"geoshift/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	{
		shifts.GET("", middleware.RBACAuthorize(rbacService, "shift", "read"), h.GetAll)
		shifts.POST("/clock-in",
			middleware.RBACAuthorize(rbacService, "shift", "create"),
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			h.ClockIn,
		)
		shifts.POST("/clock-out",
			middleware.RBACAuthorize(rbacService, "shift", "create"),
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			h.ClockOut,
		)
		shifts.GET("/stale", middleware.RBACAuthorize(rbacService, "stale_shift", "read"), h.ListStale)
		shifts.POST("/:id/resolve", middleware.RBACAuthorize(rbacService, "stale_shift", "update"), h.Resolve)
	}
}
