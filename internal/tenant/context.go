package tenant

// Context identifies the tenant a request is acting on.
// It is resolved once per request and passed explicitly to services,
// never kept as ambient global state.
type Context struct {
	CompanyID string
	Subdomain string
}

func (c Context) Valid() bool {
	return c.CompanyID != ""
}
