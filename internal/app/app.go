package app

import (
	"os"
	"time"

	"sphere-timecontrol/internal/middleware"
	"sphere-timecontrol/internal/shared/connection"
	"sphere-timecontrol/internal/timesheet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's routes.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(50, 100),
	)

	return registerModules(router, sqlDB, gormDB, redisClient)
}

// attendanceConfig reads the attendance policy from the environment,
// falling back to the defaults for anything unset or malformed.
func attendanceConfig() timesheet.Config {
	cfg := timesheet.DefaultConfig()
	if v := os.Getenv("ATTENDANCE_LATE_AFTER"); v != "" {
		if d, err := parseTimeOfDay(v); err == nil {
			cfg.LateAfter = d
		}
	}
	if v := os.Getenv("ATTENDANCE_EARLY_BEFORE"); v != "" {
		if d, err := parseTimeOfDay(v); err == nil {
			cfg.EarlyBefore = d
		}
	}
	if v := os.Getenv("ATTENDANCE_REGULAR_PER_DAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RegularPerDay = d
		}
	}
	return cfg
}

func parseTimeOfDay(v string) (time.Duration, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
