package tenant

import (
	"context"
	"net"
	"net/http"
	"strings"

	"sphere-timecontrol/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeNotFound,
		"tenant not found",
		http.StatusNotFound,
	)
	ErrTenantNotResolved = apperror.New(
		apperror.CodeInvalidInput,
		"tenant could not be resolved from request",
		http.StatusBadRequest,
	)
)

// reserved subdomains that never identify a tenant
var reservedSubdomains = map[string]bool{
	"www":   true,
	"api":   true,
	"admin": true,
	"app":   true,
}

// CompanyLookup is implemented by the company repository.
type CompanyLookup interface {
	FindIDBySubdomain(ctx context.Context, subdomain string) (string, error)
}

type Resolver struct {
	lookup CompanyLookup
}

func NewResolver(lookup CompanyLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve extracts the tenant subdomain from the request and validates it
// against the company registry. Lookup order: host subdomain, X-Tenant
// header, ?tenant= query parameter.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (Context, error) {
	sub := SubdomainFromHost(req.Host)
	if sub == "" {
		sub = strings.TrimSpace(req.Header.Get("X-Tenant"))
	}
	if sub == "" {
		sub = strings.TrimSpace(req.URL.Query().Get("tenant"))
	}
	if sub == "" {
		return Context{}, ErrTenantNotResolved
	}

	sub = strings.ToLower(sub)
	companyID, err := r.lookup.FindIDBySubdomain(ctx, sub)
	if err != nil {
		return Context{}, err
	}
	if companyID == "" {
		return Context{}, ErrTenantNotFound
	}

	return Context{CompanyID: companyID, Subdomain: sub}, nil
}

// ValidSubdomain reports whether s is usable as a tenant subdomain: a DNS
// label of 3 to 63 lowercase letters, digits or hyphens, not starting or
// ending with a hyphen, and not a reserved label.
func ValidSubdomain(s string) bool {
	if len(s) < 3 || len(s) > 63 {
		return false
	}
	if reservedSubdomains[s] {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// SubdomainFromHost returns the leftmost DNS label if the host carries one,
// or "" when the host is bare (localhost, IP, apex domain, reserved label).
func SubdomainFromHost(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if net.ParseIP(host) != nil {
		return ""
	}

	parts := strings.Split(host, ".")
	// acme.spheretime.app -> acme; spheretime.app or localhost -> no tenant
	if len(parts) < 3 {
		return ""
	}

	sub := strings.ToLower(parts[0])
	if reservedSubdomains[sub] {
		return ""
	}
	return sub
}
