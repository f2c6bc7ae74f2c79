// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/middleware"
)

const blacklistPrefix = "blacklist:"

type Service struct {
	repo     Repository
	jwt      *JWTManager
	identity IdentityVerifier
	redis    *redis.Client
	roles    middleware.RoleResolver
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	identity IdentityVerifier,
	redisClient *redis.Client,
	roles middleware.RoleResolver,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		jwt:      jwt,
		identity: identity,
		redis:    redisClient,
		roles:    roles,
		logger:   logger,
	}
}

// IssueToken exchanges an identity provider ID token for a session token.
// The email comes from the verified ID token, never from the caller.
// Emails without an employee record still get a token so sign-up can
// follow login; their role claim is empty.
func (s *Service) IssueToken(
	ctx context.Context,
	idToken, userAgent, ipAddress string,
) (*IssuedToken, error) {
	email, err := s.identity.VerifyIdentity(ctx, idToken)
	if err != nil {
		s.logger.WarnContext(ctx, "id token rejected", "error", err, "ip", ipAddress)
		return nil, err
	}

	role := ""
	if s.roles != nil {
		resolved, err := s.roles.ResolveRole(ctx, email)
		switch {
		case err == nil:
			role = resolved
		case errors.Is(err, core.ErrNotFound):
		default:
			return nil, fmt.Errorf("resolve role: %w", err)
		}
	}

	issued, err := s.jwt.Mint(email, role)
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	session := &Session{
		JTI:       issued.JTI,
		Email:     email,
		UserAgent: truncate(userAgent, 512),
		IPAddress: ipAddress,
		IssuedAt:  issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.InfoContext(ctx, "session issued", "email", email, "jti", issued.JTI)
	return issued, nil
}

// VerifySessionToken validates the token and rejects revoked ones. A
// revocation list outage is logged and does not lock everyone out.
func (s *Service) VerifySessionToken(
	ctx context.Context,
	token string,
) (*middleware.SessionClaims, error) {
	claims, err := s.jwt.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.IsRevoked(ctx, claims.JTI)
	if err != nil {
		s.logger.WarnContext(ctx, "revocation check failed", "error", err)
		return claims, nil
	}
	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) Logout(ctx context.Context, claims *middleware.SessionClaims) error {
	if err := s.repo.Revoke(ctx, claims.JTI); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}

	if err := s.blacklist(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return err
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, email string) (int, error) {
	sessions, err := s.repo.RevokeAllForEmail(ctx, strings.ToLower(email))
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}

	for _, session := range sessions {
		if err := s.blacklist(ctx, session.JTI, session.ExpiresAt); err != nil {
			return 0, err
		}
	}

	return len(sessions), nil
}

func (s *Service) ActiveSessions(
	ctx context.Context,
	email, currentJTI string,
) ([]SessionInfo, error) {
	sessions, err := s.repo.ListActive(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		out = append(out, SessionInfo{
			ID:        session.JTI,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			IssuedAt:  session.IssuedAt,
			ExpiresAt: session.ExpiresAt,
			Current:   session.JTI == currentJTI,
		})
	}

	return out, nil
}

// PruneSessions drops session rows that expired more than a week ago.
func (s *Service) PruneSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}

func (s *Service) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := s.redis.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}

func (s *Service) blacklist(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, blacklistPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
