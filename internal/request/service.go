// AngelaMos | 2026
// service.go

package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/asset-management/internal/asset"
	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/events"
	"github.com/carterperez-dev/asset-management/internal/pdf"
)

var (
	ErrNotAffiliated = core.ConflictError(
		"not_affiliated",
		"join a team before requesting assets",
	)
	ErrForeignAsset = core.ForbiddenError("asset belongs to another company")
)

type ProfileSource interface {
	Profile(ctx context.Context, email string) (*employee.Employee, error)
}

type CompanyResolver interface {
	CompanyInfo(ctx context.Context, email string) (employee.CompanyInfo, error)
}

type Service struct {
	tx        core.TxRunner
	repo      Repository
	newRepo   func(core.DBTX) Repository
	newAssets func(core.DBTX) asset.Repository
	profiles  ProfileSource
	companies CompanyResolver
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(
	tx core.TxRunner,
	repo Repository,
	newRepo func(core.DBTX) Repository,
	newAssets func(core.DBTX) asset.Repository,
	profiles ProfileSource,
	companies CompanyResolver,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tx:        tx,
		repo:      repo,
		newRepo:   newRepo,
		newAssets: newAssets,
		profiles:  profiles,
		companies: companies,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create files a pending request for an in-stock asset of the caller's
// own company and bumps the asset's request counter.
func (s *Service) Create(ctx context.Context, email string, req CreateRequest) (string, error) {
	ctx, span := core.StartSpan(ctx, "request.Create",
		core.AttrRequester.String(email),
		core.AttrAssetID.String(req.AssetID),
	)
	var err error
	defer func() { core.EndSpan(span, err) }()

	requester, err := s.profiles.Profile(ctx, email)
	if err != nil {
		return "", err
	}

	company, err := s.companies.CompanyInfo(ctx, requester.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			err = ErrNotAffiliated
		}
		return "", err
	}

	r := &Request{
		ID:             uuid.New().String(),
		AssetID:        req.AssetID,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		HREmail:        strings.ToLower(company.HREmail),
		Notes:          strings.TrimSpace(req.Notes),
		Status:         StatusPending,
	}

	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		assets := s.newAssets(tx)

		a, lockErr := assets.LockByID(ctx, req.AssetID)
		if lockErr != nil {
			return lockErr
		}
		if !strings.EqualFold(a.ProviderEmail, r.HREmail) {
			return ErrForeignAsset
		}
		if a.ProductQuantity == 0 {
			return asset.ErrOutOfStock
		}

		if err := s.newRepo(tx).Create(ctx, r); err != nil {
			return err
		}
		return assets.IncrementRequestCount(ctx, a.ID)
	})
	if err != nil {
		return "", err
	}

	events.Emit(ctx, s.logger, s.publisher, events.AssetRequested, map[string]string{
		"id":        r.ID,
		"asset_id":  r.AssetID,
		"requester": r.RequesterEmail,
		"hr_email":  r.HREmail,
	})
	s.logger.InfoContext(ctx, "asset requested",
		"request_id", r.ID,
		"asset_id", r.AssetID,
		"requester", r.RequesterEmail,
	)

	return r.ID, nil
}

// UpdateStatus moves a request along its lifecycle. The caller is the HR
// the request was filed with or the employee who filed it; approval takes
// one unit of stock and a return gives it back.
func (s *Service) UpdateStatus(ctx context.Context, callerEmail, id, status string) (int64, error) {
	ctx, span := core.StartSpan(ctx, "request.UpdateStatus",
		core.AttrRequestID.String(id),
		core.AttrRequestStatus.String(status),
	)
	var err error
	defer func() { core.EndSpan(span, err) }()

	var (
		from     string
		modified int64
		actor    Actor
	)

	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.newRepo(tx)
		assets := s.newAssets(tx)

		r, lockErr := repo.Lock(ctx, id)
		if lockErr != nil {
			return lockErr
		}
		from = r.Status

		switch {
		case strings.EqualFold(callerEmail, r.HREmail):
			actor = ActorHR
		case strings.EqualFold(callerEmail, r.RequesterEmail):
			actor = ActorRequester
		default:
			return core.ForbiddenError("not your request")
		}

		a, lockErr := assets.LockByID(ctx, r.AssetID)
		if lockErr != nil {
			return lockErr
		}

		if !CanTransition(actor, r.Status, status, a.IsReturnable()) {
			return ErrInvalidTransition
		}

		var approvedAt *time.Time
		switch status {
		case StatusApprove:
			if err := assets.AdjustQuantity(ctx, a.ID, -1); err != nil {
				return err
			}
			now := s.now().UTC()
			approvedAt = &now
		case StatusReturn:
			if err := assets.AdjustQuantity(ctx, a.ID, 1); err != nil {
				return err
			}
		}

		var setErr error
		modified, setErr = repo.SetStatus(ctx, r.ID, status, approvedAt)
		return setErr
	})
	if err != nil {
		return 0, err
	}

	events.Emit(ctx, s.logger, s.publisher, events.RequestStatusChanged, map[string]string{
		"id":    id,
		"from":  from,
		"to":    status,
		"actor": actor.String(),
	})
	s.logger.InfoContext(ctx, "asset request status changed",
		"request_id", id,
		"from", from,
		"to", status,
		"actor", actor.String(),
	)

	return modified, nil
}

// Monthly lists the caller's requests made since the start of the current
// calendar month.
func (s *Service) Monthly(ctx context.Context, email string, page core.PageParams) ([]Detail, int, error) {
	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return s.repo.ListByRequester(ctx, strings.ToLower(email), Query{
		Since: &since,
		Page:  page.Page,
		Size:  page.Size,
	})
}

func (s *Service) ForRequester(ctx context.Context, email string, q Query) ([]Detail, int, error) {
	return s.repo.ListByRequester(ctx, strings.ToLower(email), q)
}

func (s *Service) ForHR(ctx context.Context, hrEmail string, q Query) ([]Detail, int, error) {
	q.Status = ""
	q.Since = nil
	return s.repo.ListByHR(ctx, strings.ToLower(hrEmail), q)
}

// Slip renders the printable PDF for a request. Only the requester and
// the HR it was filed with may print it.
func (s *Service) Slip(ctx context.Context, callerEmail, id string) ([]byte, error) {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(callerEmail, d.RequesterEmail) &&
		!strings.EqualFold(callerEmail, d.HREmail) {
		return nil, core.ForbiddenError("not your request")
	}

	hr, err := s.profiles.Profile(ctx, d.HREmail)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}

	return pdf.Render(pdf.AssetSlip{
		CompanyName:    hr.CompanyName,
		HRName:         hr.Name,
		HREmail:        hr.Email,
		EmployeeCount:  hr.EmployeeCount,
		RequesterName:  d.RequesterName,
		RequesterEmail: d.RequesterEmail,
		ProductName:    d.ProductName,
		ProductType:    d.ProductType,
		Quantity:       d.ProductQuantity,
		Availability:   d.Availability,
		Status:         d.Status,
		RequestedAt:    d.RequestedDate,
		ApprovedAt:     d.ApproveDate,
		PrintedAt:      s.now(),
	})
}
