// AngelaMos | 2026
// service.go

package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/asset-management/internal/cache"
	"github.com/carterperez-dev/asset-management/internal/config"
	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/events"
	"github.com/carterperez-dev/asset-management/internal/plan"
)

type Service struct {
	repo      Repository
	cache     *cache.Cache
	publisher events.Publisher
	team      config.TeamConfig
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	c *cache.Cache,
	publisher events.Publisher,
	team config.TeamConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		cache:     c,
		publisher: publisher,
		team:      team,
		logger:    logger,
	}
}

// Signup registers an account. Registering an email twice is not an
// error: the response says the user already exists and carries no id.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	ctx, span := core.StartSpan(ctx, "employee.Signup", core.AttrRole.String(req.Role))
	var err error
	defer func() { core.EndSpan(span, err) }()

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		err = fmt.Errorf("date_of_birth: %w", core.ErrInvalidInput)
		return nil, err
	}

	e := &Employee{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Image:       req.Image,
		DateOfBirth: dob,
		Role:        req.Role,
	}

	if req.Role == RoleHR {
		pkg, pkgErr := plan.ByTitle(req.Package)
		if pkgErr != nil {
			err = fmt.Errorf("unknown package %q: %w", req.Package, core.ErrInvalidInput)
			return nil, err
		}
		e.CompanyName = strings.TrimSpace(req.CompanyName)
		e.CompanyLogo = req.CompanyLogo
		e.PackagePrice = pkg.Price
		e.PackageMembers = pkg.Members
		e.MemberLimit = s.team.FreeMemberAllowance
		e.PaymentStatus = PaymentPending
	} else {
		e.PackagePrice = decimal.Zero
	}

	if err = s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			err = nil
			return &SignupResponse{Message: "user already exists"}, nil
		}
		return nil, err
	}

	s.invalidate(ctx, e.Email)
	events.Emit(ctx, s.logger, s.publisher, events.EmployeeRegistered, map[string]string{
		"id":    e.ID,
		"email": e.Email,
		"role":  e.Role,
	})
	s.logger.InfoContext(ctx, "employee registered", "email", e.Email, "role", e.Role)

	return &SignupResponse{InsertedID: &e.ID}, nil
}

func (s *Service) Profile(ctx context.Context, email string) (*Employee, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	email string,
	req UpdateProfileRequest,
) (int64, error) {
	email = strings.ToLower(email)

	upd := ProfileUpdate{Name: req.Name, Image: req.Image}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return 0, fmt.Errorf("date_of_birth: %w", core.ErrInvalidInput)
		}
		upd.DateOfBirth = dob
	}

	modified, err := s.repo.UpdateProfile(ctx, email, upd)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, email)
	return modified, nil
}

// RoleInfo is read through the cache; every HR-only request goes through
// it via ResolveRole.
func (s *Service) RoleInfo(ctx context.Context, email string) (RoleInfo, error) {
	email = strings.ToLower(email)

	return cache.Remember(ctx, s.cache, s.cache.Key("role", email),
		func(ctx context.Context) (RoleInfo, error) {
			e, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return RoleInfo{}, err
			}
			info := RoleInfo{Role: e.Role}
			if e.IsHR() {
				info.PaymentStatus = e.PaymentStatus
			}
			return info, nil
		})
}

func (s *Service) ResolveRole(ctx context.Context, email string) (string, error) {
	info, err := s.RoleInfo(ctx, email)
	if err != nil {
		return "", err
	}
	return info.Role, nil
}

// CompanyInfo returns the caller's own company for HR accounts and the
// company of the team they joined for employees. The view is cached once
// per company under the HR's email, so every teammate reads the same entry
// and a membership or payment change only has to drop that one key.
func (s *Service) CompanyInfo(ctx context.Context, email string) (CompanyInfo, error) {
	owner, err := s.companyOwner(ctx, strings.ToLower(email))
	if err != nil {
		return CompanyInfo{}, err
	}

	return cache.Remember(ctx, s.cache, s.cache.Key("company", owner),
		func(ctx context.Context) (CompanyInfo, error) {
			hr, err := s.repo.GetByEmail(ctx, owner)
			if err != nil {
				return CompanyInfo{}, err
			}
			return ToCompanyInfo(hr), nil
		})
}

// companyOwner is the HR email whose company email belongs to.
func (s *Service) companyOwner(ctx context.Context, email string) (string, error) {
	info, err := s.RoleInfo(ctx, email)
	if err != nil {
		return "", err
	}
	if info.Role == RoleHR {
		return email, nil
	}

	return cache.Remember(ctx, s.cache, s.cache.Key("affiliation", email),
		func(ctx context.Context) (string, error) {
			hr, err := s.repo.CompanyOf(ctx, email)
			if err != nil {
				return "", err
			}
			return strings.ToLower(hr.Email), nil
		})
}

func (s *Service) NotAffiliated(
	ctx context.Context,
	page core.PageParams,
) ([]Employee, int, error) {
	return s.repo.ListNotAffiliated(ctx, page)
}

// Invalidate drops cached role, affiliation and company views for emails.
// Team and payment changes call it after they commit with the HR email
// included, which refreshes the company view for the whole team.
func (s *Service) Invalidate(ctx context.Context, emails ...string) {
	s.invalidate(ctx, emails...)
}

func (s *Service) invalidate(ctx context.Context, emails ...string) {
	keys := make([]string, 0, len(emails)*3)
	for _, email := range emails {
		keys = append(keys,
			s.cache.Key("role", email),
			s.cache.Key("affiliation", email),
			s.cache.Key("company", email),
		)
	}

	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "error", err)
	}
}
