// AngelaMos | 2026
// service.go

package team

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
)

const CodeMemberLimitExceeded = "member_limit_exceeded"

var (
	ErrMemberLimitExceeded = core.ConflictError(
		CodeMemberLimitExceeded,
		"adding these members would exceed the package member limit",
	)
	ErrAlreadyAffiliated = core.ConflictError(
		"already_affiliated",
		"employee already belongs to a team",
	)
	ErrNotAnEmployee = core.ConflictError(
		"not_an_employee",
		"only employee accounts can join a team",
	)
)

// ProfileCache drops cached role and company views after membership
// changes.
type ProfileCache interface {
	Invalidate(ctx context.Context, emails ...string)
}

type Service struct {
	tx        core.TxRunner
	repo      Repository
	newRepo   func(core.DBTX) Repository
	profiles  ProfileCache
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(
	tx core.TxRunner,
	repo Repository,
	newRepo func(core.DBTX) Repository,
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
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
	}
}

// AddSingle adds one employee to hrEmail's team.
func (s *Service) AddSingle(ctx context.Context, hrEmail, employeeID string) (string, error) {
	members, err := s.add(ctx, hrEmail, []string{employeeID})
	if err != nil {
		return "", err
	}
	return members[0].ID, nil
}

// AddMultiple adds every employee in employeeIDs or none of them. The
// projected team size is checked against the member limit before any
// insert.
func (s *Service) AddMultiple(ctx context.Context, hrEmail string, employeeIDs []string) (int, error) {
	members, err := s.add(ctx, hrEmail, dedupe(employeeIDs))
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

func (s *Service) add(ctx context.Context, hrEmail string, ids []string) ([]Member, error) {
	ctx, span := core.StartSpan(ctx, "team.add",
		core.AttrHREmail.String(hrEmail),
		core.AttrCount.Int(len(ids)),
	)
	var err error
	defer func() { core.EndSpan(span, err) }()

	if len(ids) == 0 {
		err = fmt.Errorf("no employees selected: %w", core.ErrInvalidInput)
		return nil, err
	}

	hrEmail = strings.ToLower(hrEmail)
	var added []Member
	var hr *employee.Employee

	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.newRepo(tx)

		var lockErr error
		hr, lockErr = repo.LockHR(ctx, hrEmail)
		if lockErr != nil {
			return lockErr
		}

		if !hr.HasCapacity(len(ids)) {
			return ErrMemberLimitExceeded
		}

		employees, lockErr := repo.LockEmployees(ctx, ids)
		if lockErr != nil {
			return lockErr
		}
		if len(employees) != len(ids) {
			return fmt.Errorf("lock employees: %w", core.ErrNotFound)
		}

		added = make([]Member, 0, len(employees))
		for i := range employees {
			e := &employees[i]
			if e.Role != employee.RoleEmployee {
				return ErrNotAnEmployee
			}
			if e.IsJoin {
				return ErrAlreadyAffiliated
			}

			m := newMember(e, hr)
			if insErr := repo.Insert(ctx, &m); insErr != nil {
				if errors.Is(insErr, core.ErrDuplicateKey) {
					return ErrAlreadyAffiliated
				}
				return insErr
			}
			added = append(added, m)
		}

		if joinErr := repo.SetJoined(ctx, ids, true); joinErr != nil {
			return joinErr
		}

		return repo.AdjustEmployeeCount(ctx, hr.ID, len(added))
	})
	if err != nil {
		return nil, err
	}

	emails := []string{hrEmail}
	for _, m := range added {
		emails = append(emails, m.EmployeeEmail)
		events.Emit(ctx, s.logger, s.publisher, events.TeamMemberAdded, map[string]string{
			"member_id":      m.ID,
			"employee_email": m.EmployeeEmail,
			"hr_email":       hrEmail,
		})
	}
	s.profiles.Invalidate(ctx, emails...)

	s.logger.InfoContext(ctx, "team members added",
		"hr_email", hrEmail,
		"count", len(added),
		"employee_count", hr.EmployeeCount+len(added),
		"member_limit", hr.MemberLimit,
	)

	return added, nil
}

// Remove deletes membership memberID from hrEmail's team and frees the
// employee to join another team.
func (s *Service) Remove(ctx context.Context, hrEmail, memberID string) (int64, error) {
	hrEmail = strings.ToLower(hrEmail)

	var removed *Member
	var deleted int64

	err := s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.newRepo(tx)

		m, err := repo.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		if !strings.EqualFold(m.HREmail, hrEmail) {
			return core.ForbiddenError("member belongs to another team")
		}

		deleted, err = repo.Delete(ctx, memberID)
		if err != nil {
			return err
		}
		if err := repo.SetJoined(ctx, []string{m.EmployeeID}, false); err != nil {
			return err
		}
		if err := repo.AdjustEmployeeCount(ctx, m.HRID, -1); err != nil {
			return err
		}

		removed = m
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.profiles.Invalidate(ctx, hrEmail, removed.EmployeeEmail)
	events.Emit(ctx, s.logger, s.publisher, events.TeamMemberRemoved, map[string]string{
		"member_id":      removed.ID,
		"employee_email": removed.EmployeeEmail,
		"hr_email":       hrEmail,
	})

	return deleted, nil
}

func (s *Service) MyTeam(ctx context.Context, hrEmail string, page core.PageParams) ([]Member, int, error) {
	return s.repo.ListByHR(ctx, strings.ToLower(hrEmail), page)
}

func (s *Service) Teammates(ctx context.Context, employeeEmail string, page core.PageParams) ([]Member, int, error) {
	return s.repo.ListTeammates(ctx, strings.ToLower(employeeEmail), page)
}

func newMember(e, hr *employee.Employee) Member {
	return Member{
		ID:            uuid.New().String(),
		EmployeeID:    e.ID,
		HRID:          hr.ID,
		EmployeeName:  e.Name,
		EmployeeEmail: e.Email,
		EmployeeImage: e.Image,
		EmployeeBirth: e.DateOfBirth,
		EmployeeRole:  e.Role,
		HRName:        hr.Name,
		HREmail:       hr.Email,
		CompanyName:   hr.CompanyName,
		CompanyLogo:   hr.CompanyLogo,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
