package app

import (
	"database/sql"

	"sphere-timecontrol/internal/company"
	"sphere-timecontrol/internal/department"
	"sphere-timecontrol/internal/employee"
	"sphere-timecontrol/internal/messaging/kafka"
	"sphere-timecontrol/internal/punch"
	"sphere-timecontrol/internal/rbac"
	"sphere-timecontrol/internal/rbac/infra"
	"sphere-timecontrol/internal/report"
	"sphere-timecontrol/internal/shared/counter"
	"sphere-timecontrol/internal/summary"
	"sphere-timecontrol/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	punchRepo := punch.NewRepository(gormDB)
	summaryRepo := summary.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Tenant resolution ---
	companyLookup := company.NewLookup(companyRepo, rdb)
	tenantResolver := tenant.NewResolver(companyLookup)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceCfg := attendanceConfig()
	companyService := company.NewService(companyRepo, companyLookup)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	punchService := punch.NewServiceWithOutbox(db, punchRepo, outboxRepo)
	reportService := report.NewService(punchRepo, employeeRepo, attendanceCfg, rdb)
	summaryService := summary.NewService(summaryRepo, punchRepo, attendanceCfg)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	punchHandler := punch.NewHandler(punchService, rdb)
	reportHandler := report.NewHandler(reportService)
	summaryHandler := summary.NewHandler(summaryService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")

	// tenant registry lives outside tenant resolution; super admins reach
	// it from the apex domain
	company.RegisterRoutes(api, companyHandler, rbacService)

	tenanted := api.Group("", tenant.Middleware(tenantResolver))
	{
		department.RegisterRoutes(tenanted, departmentHandler, rbacService)
		employee.RegisterRoutes(tenanted, employeeHandler, rbacService)
		punch.RegisterRoutes(tenanted, punchHandler, rbacService, rdb)
		report.RegisterRoutes(tenanted, reportHandler, rbacService)
		summary.RegisterRoutes(tenanted, summaryHandler, rbacService)
	}

	return nil
}
