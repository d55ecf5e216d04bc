package summary

import (
	"sphere-timecontrol/internal/middleware"
	"sphere-timecontrol/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	summaries := r.Group("/summaries")
	summaries.Use(middleware.AuthMiddleware())
	{
		summaries.GET("", middleware.RBACAuthorize(rbacService, "summary", "read"), h.GetAll)
	}
}
