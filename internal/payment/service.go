// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/events"
	"github.com/carterperez-dev/asset-management/internal/plan"
)

var (
	ErrNotCompleted = core.ConflictError(
		"payment_not_completed",
		"the charge has not succeeded",
	)
	ErrAmountMismatch = core.ConflictError(
		"amount_mismatch",
		"the charged amount does not match the package price",
	)
	ErrAlreadyRecorded = core.DuplicateError("transaction_id")
)

type IntentGateway interface {
	CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

type ProfileCache interface {
	Invalidate(ctx context.Context, emails ...string)
}

type Service struct {
	tx        core.TxRunner
	repo      Repository
	newRepo   func(core.DBTX) Repository
	gateway   IntentGateway
	profiles  ProfileCache
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(
	tx core.TxRunner,
	repo Repository,
	newRepo func(core.DBTX) Repository,
	gateway IntentGateway,
	profiles ProfileCache,
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
		gateway:   gateway,
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Packages() []plan.Package {
	return plan.All()
}

func (s *Service) CreateIntent(ctx context.Context, hrEmail string, req IntentRequest) (*IntentResponse, error) {
	pkg, err := plan.ByTitle(req.Package)
	if err != nil {
		return nil, fmt.Errorf("unknown package %q: %w", req.Package, core.ErrInvalidInput)
	}

	intent, err := s.gateway.CreateIntent(ctx, plan.AmountInCents(pkg.Price), map[string]string{
		"hr_email": strings.ToLower(hrEmail),
		"package":  pkg.Title,
	})
	if err != nil {
		return nil, err
	}

	return &IntentResponse{ClientSecret: intent.ClientSecret, ID: intent.ID}, nil
}

// Confirm records a charge the client completed with the gateway. The
// intent is fetched back from the gateway and must have succeeded for
// exactly the package price before the seats are granted.
func (s *Service) Confirm(ctx context.Context, hrEmail string, req ConfirmRequest) (*ConfirmResponse, error) {
	ctx, span := core.StartSpan(ctx, "payment.Confirm",
		core.AttrHREmail.String(hrEmail),
		core.AttrPackage.String(req.Package),
	)
	var err error
	defer func() { core.EndSpan(span, err) }()

	hrEmail = strings.ToLower(hrEmail)

	pkg, err := plan.ByTitle(req.Package)
	if err != nil {
		err = fmt.Errorf("unknown package %q: %w", req.Package, core.ErrInvalidInput)
		return nil, err
	}

	intent, err := s.gateway.GetIntent(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			err = fmt.Errorf("unknown transaction: %w", core.ErrInvalidInput)
		}
		return nil, err
	}

	if err = verifyIntent(intent, pkg, hrEmail); err != nil {
		return nil, err
	}

	resp, err := s.record(ctx, hrEmail, pkg, intent.ID)
	return resp, err
}

// Grant applies a package without a gateway charge, for seeding and
// support adjustments. reference must be unique like a transaction id.
func (s *Service) Grant(ctx context.Context, hrEmail, title, reference string) (*ConfirmResponse, error) {
	pkg, err := plan.ByTitle(title)
	if err != nil {
		return nil, fmt.Errorf("unknown package %q: %w", title, core.ErrInvalidInput)
	}
	return s.record(ctx, strings.ToLower(hrEmail), pkg, reference)
}

func (s *Service) record(
	ctx context.Context,
	hrEmail string,
	pkg plan.Package,
	transactionID string,
) (*ConfirmResponse, error) {
	p := &Payment{
		ID:             uuid.New().String(),
		HREmail:        hrEmail,
		TransactionID:  transactionID,
		Amount:         pkg.Price,
		PackageMembers: pkg.Members,
		Status:         IntentSucceeded,
	}

	var limit int
	err := s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.newRepo(tx)

		hr, lockErr := repo.LockHR(ctx, hrEmail)
		if lockErr != nil {
			return lockErr
		}

		if insertErr := repo.Insert(ctx, p); insertErr != nil {
			if errors.Is(insertErr, core.ErrDuplicateKey) {
				return ErrAlreadyRecorded
			}
			return insertErr
		}

		var applyErr error
		limit, applyErr = repo.ApplyPackage(ctx, hr.ID, pkg)
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	s.profiles.Invalidate(ctx, hrEmail)
	events.Emit(ctx, s.logger, s.publisher, events.PaymentSucceeded, map[string]any{
		"id":             p.ID,
		"hr_email":       hrEmail,
		"transaction_id": p.TransactionID,
		"amount":         p.Amount.StringFixed(2),
		"members":        pkg.Members,
	})
	s.logger.InfoContext(ctx, "payment recorded",
		"hr_email", hrEmail,
		"package", pkg.Title,
		"member_limit", limit,
	)

	return &ConfirmResponse{
		InsertedID:    p.ID,
		PaymentStatus: employee.PaymentPaid,
		MemberLimit:   limit,
	}, nil
}

func verifyIntent(intent *Intent, pkg plan.Package, hrEmail string) error {
	if intent.Status != IntentSucceeded {
		return ErrNotCompleted
	}
	if intent.Amount != plan.AmountInCents(pkg.Price) {
		return ErrAmountMismatch
	}
	if owner := intent.Metadata["hr_email"]; owner != "" && !strings.EqualFold(owner, hrEmail) {
		return core.ForbiddenError("payment belongs to another account")
	}
	return nil
}

func (s *Service) History(ctx context.Context, hrEmail string, page core.PageParams) ([]Payment, int, error) {
	return s.repo.ListByHR(ctx, strings.ToLower(hrEmail), page)
}
