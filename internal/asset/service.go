// AngelaMos | 2026
// service.go

package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
)

// ProfileSource supplies the provider snapshot stored on new assets.
type ProfileSource interface {
	Profile(ctx context.Context, email string) (*employee.Employee, error)
}

// CompanyResolver finds the HR whose assets an employee may browse.
type CompanyResolver interface {
	CompanyInfo(ctx context.Context, email string) (employee.CompanyInfo, error)
}

type Service struct {
	repo      Repository
	profiles  ProfileSource
	companies CompanyResolver
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	profiles ProfileSource,
	companies CompanyResolver,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		profiles:  profiles,
		companies: companies,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, hrEmail string, req CreateRequest) (string, error) {
	ctx, span := core.StartSpan(ctx, "asset.Create", core.AttrHREmail.String(hrEmail))
	var err error
	defer func() { core.EndSpan(span, err) }()

	provider, err := s.profiles.Profile(ctx, hrEmail)
	if err != nil {
		return "", err
	}

	a := &Asset{
		ID:              uuid.New().String(),
		ProductName:     strings.TrimSpace(req.ProductName),
		ProductType:     req.ProductType,
		ProductQuantity: req.ProductQuantity,
		Availability:    AvailabilityFor(req.ProductQuantity),
		ProviderName:    provider.Name,
		ProviderEmail:   provider.Email,
		ProviderPhoto:   provider.Image,
	}

	if err = s.repo.Create(ctx, a); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "asset created",
		"asset_id", a.ID,
		"provider", a.ProviderEmail,
		"quantity", a.ProductQuantity,
	)
	return a.ID, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, hrEmail, id string, req UpdateRequest) (int64, error) {
	if _, err := s.owned(ctx, hrEmail, id); err != nil {
		return 0, err
	}

	upd := Update{
		ProductName:     req.ProductName,
		ProductType:     req.ProductType,
		ProductQuantity: req.ProductQuantity,
	}
	if upd.ProductName != nil {
		name := strings.TrimSpace(*upd.ProductName)
		upd.ProductName = &name
	}

	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, hrEmail, id string) (int64, error) {
	if _, err := s.owned(ctx, hrEmail, id); err != nil {
		return 0, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "asset deleted", "asset_id", id, "provider", hrEmail)
	return deleted, nil
}

func (s *Service) owned(ctx context.Context, hrEmail, id string) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(a.ProviderEmail, hrEmail) {
		return nil, core.ForbiddenError("asset belongs to another company")
	}
	return a, nil
}

func (s *Service) ListForHR(ctx context.Context, hrEmail string, params ListParams) ([]Asset, int, error) {
	return s.repo.List(ctx, strings.ToLower(hrEmail), params)
}

// ListForEmployee lists the assets of the employee's HR. An employee who
// has not joined a team sees an empty list.
func (s *Service) ListForEmployee(ctx context.Context, email string, params ListParams) ([]Asset, int, error) {
	company, err := s.companies.CompanyInfo(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return []Asset{}, 0, nil
		}
		return nil, 0, fmt.Errorf("resolve company: %w", err)
	}

	return s.repo.List(ctx, strings.ToLower(company.HREmail), params)
}

func (s *Service) Count(ctx context.Context, hrEmail string) (CountResponse, error) {
	return s.repo.CountByType(ctx, strings.ToLower(hrEmail))
}
