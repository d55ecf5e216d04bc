package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleHR         = "HR"
	RoleManager    = "MANAGER"
	RoleEmployee   = "EMPLOYEE"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.seedPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}

// seedPolicies loads the static permission matrix. Roles come from the
// JWT, so there is no per-employee grouping to manage here.
func (s *service) seedPolicies() error {
	policies := [][]string{
		// employees punch for themselves and read their own records
		{RoleEmployee, "punch", "create"},
		{RoleEmployee, "punch", "read"},
		{RoleEmployee, "punch", "update"},
		{RoleEmployee, "summary", "read"},

		// HR manages the employee directory
		{RoleHR, "employee", "create"},
		{RoleHR, "employee", "update"},
		{RoleHR, "employee", "delete"},

		// admins additionally manage master data, correct punches and
		// edit their own tenant
		{RoleAdmin, "punch", "delete"},
		{RoleAdmin, "department", "create"},
		{RoleAdmin, "department", "update"},
		{RoleAdmin, "department", "delete"},
		{RoleAdmin, "company", "update_own"},

		// super admins manage the tenant registry
		{RoleSuperAdmin, "company", "create"},
		{RoleSuperAdmin, "company", "read"},
		{RoleSuperAdmin, "company", "update"},
		{RoleSuperAdmin, "company", "delete"},
	}
	for _, p := range policies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	// role inheritance: every privileged role covers the one below it
	groupings := [][]string{
		{RoleManager, RoleEmployee},
		{RoleHR, RoleManager},
		{RoleAdmin, RoleHR},
		{RoleSuperAdmin, RoleAdmin},
	}
	for _, g := range groupings {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}

	// shared read permissions for master data
	readable := []string{"employee", "department", "report", "summary"}
	for _, obj := range readable {
		if _, err := s.enforcer.AddPolicy(RoleManager, obj, "read"); err != nil {
			return err
		}
	}

	return nil
}
