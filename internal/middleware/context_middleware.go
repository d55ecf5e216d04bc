package middleware

import (
	"sphere-timecontrol/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		actor := c.GetString("employee_id")
		if actor == "" {
			actor = c.GetString("user_id_validated")
		}

		// Scoped logger yang sudah ditempeli metadata request ini
		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor_id", actor),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActorID(ctx, actor)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
