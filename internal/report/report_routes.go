package report

import (
	"sphere-timecontrol/internal/middleware"
	"sphere-timecontrol/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/daily", middleware.RBACAuthorize(rbacService, "report", "read"), h.GetDaily)
		reports.GET("", middleware.RBACAuthorize(rbacService, "report", "read"), h.GetRange)
		reports.GET("/summary", middleware.RBACAuthorize(rbacService, "report", "read"), h.GetSummary)
		reports.GET("/export", middleware.RBACAuthorize(rbacService, "report", "read"), h.ExportCSV)
	}
}
