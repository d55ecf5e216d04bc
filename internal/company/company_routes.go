package company

import (
	"sphere-timecontrol/internal/middleware"
	"sphere-timecontrol/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		// self-service endpoints for tenant admins
		companies.GET("/me",
			middleware.RateLimitByUser(2, 10),
			h.GetMe,
		)
		companies.PUT("/me",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "update_own"),
			h.UpdateMe,
		)

		// tenant registry, super admin only
		companies.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetAll)
		companies.POST("",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, "company", "create"),
			h.Create,
		)
		companies.GET("/:id", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetByID)
		companies.PUT("/:id", middleware.RBACAuthorize(rbacService, "company", "update"), h.Update)
		companies.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "delete"),
			h.Delete,
		)
	}
}
