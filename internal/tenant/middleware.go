package tenant

import (
	"sphere-timecontrol/internal/shared/apperror"
	"sphere-timecontrol/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const ContextKey = "tenant_company_id"

// Middleware resolves the tenant for every request and stores it in the
// gin context. Auth middleware later cross-checks the JWT company claim
// against the resolved tenant.
func Middleware(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, err := resolver.Resolve(c.Request.Context(), c.Request)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set(ContextKey, tc.CompanyID)
		c.Set("tenant_subdomain", tc.Subdomain)
		c.Next()
	}
}
