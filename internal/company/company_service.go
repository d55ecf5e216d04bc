package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "sphere-timecontrol/internal/company/errors"
	"sphere-timecontrol/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	// Create registers a new tenant. Super admin only.
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	lookup *Lookup
	logger *zap.Logger
}

func NewService(repo Repository, lookup *Lookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, lookup: lookup, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	sub := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if !tenant.ValidSubdomain(sub) {
		return nil, companyerrors.ErrInvalidSubdomain
	}

	comp := &Company{
		ID:        uuid.New(),
		Name:      req.Name,
		Subdomain: sub,
		Email:     req.Email,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		if isSubdomainConflict(err) {
			return nil, companyerrors.ErrSubdomainTaken
		}
		s.logger.Error("create company failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("company created",
		zap.String("company_id", comp.ID.String()),
		zap.String("subdomain", comp.Subdomain),
	)
	return mapToResponse(comp), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, err
	}

	resp := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		resp[i] = *mapToResponse(&c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	return mapToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.Email != "" {
		comp.Email = req.Email
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update company failed", zap.Error(err))
		return nil, err
	}

	// deactivation must take effect before the cache TTL runs out
	if s.lookup != nil {
		s.lookup.Invalidate(ctx, comp.Subdomain)
	}

	s.logger.Info("company updated", zap.String("company_id", id))
	return mapToResponse(comp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companyerrors.ErrCompanyNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		s.logger.Error("delete company failed", zap.Error(err))
		return err
	}

	if s.lookup != nil {
		s.lookup.Invalidate(ctx, comp.Subdomain)
	}

	s.logger.Info("company deleted", zap.String("company_id", id))
	return nil
}

func isSubdomainConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_company_subdomain"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_company_subdomain")
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Subdomain: c.Subdomain,
		Email:     c.Email,
		IsActive:  c.IsActive,
	}
}
