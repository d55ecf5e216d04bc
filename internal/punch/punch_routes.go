package punch

import (
	"sphere-timecontrol/internal/middleware"
	"sphere-timecontrol/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	punches := r.Group("/punches")
	punches.Use(middleware.AuthMiddleware())
	{
		punches.GET("", middleware.RBACAuthorize(rbacService, "punch", "read"), h.GetAll)
		punches.GET("/today", middleware.RBACAuthorize(rbacService, "punch", "read"), h.GetStatus)

		record := punches.Group("")
		record.Use(
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "punch", "create"),
		)
		{
			record.POST("/check-in", h.Record(KindCheckIn))
			record.POST("/check-out", h.Record(KindCheckOut))
			record.POST("/break-start", h.Record(KindBreakStart))
			record.POST("/break-end", h.Record(KindBreakEnd))
			record.POST("/lunch-start", h.Record(KindLunchStart))
			record.POST("/lunch-end", h.Record(KindLunchEnd))
		}

		punches.PATCH("/:id", middleware.RBACAuthorize(rbacService, "punch", "update"), h.Correct)
		punches.DELETE("/:id", middleware.RBACAuthorize(rbacService, "punch", "delete"), h.Delete)
	}
}
