// AngelaMos | 2026
// identity.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/asset-management/internal/config"
	"github.com/carterperez-dev/asset-management/internal/core"
)

// IdentityVerifier checks an ID token from the identity provider and
// returns the email it vouches for.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, idToken string) (string, error)
}

// OIDCVerifier validates provider ID tokens against the provider's
// published JWKS. Keys are cached and refreshed in the background; an
// unknown kid forces one synchronous refresh so key rotation does not
// reject fresh logins.
type OIDCVerifier struct {
	cache *jwk.Cache
	cfg   config.IdentityConfig
}

func NewOIDCVerifier(
	ctx context.Context,
	cfg config.IdentityConfig,
) (*OIDCVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, errors.New("identity provider jwks url is not configured")
	}

	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("create jwks cache: %w", err)
	}

	opts := []jwk.RegisterOption{jwk.WithWaitReady(false)}
	if cfg.RefreshInterval > 0 {
		opts = append(opts, jwk.WithMinInterval(cfg.RefreshInterval))
	}
	if err := cache.Register(ctx, cfg.JWKSURL, opts...); err != nil {
		_ = cache.Shutdown(ctx) //nolint:errcheck // setup already failed
		return nil, fmt.Errorf("register jwks url: %w", err)
	}

	return &OIDCVerifier{cache: cache, cfg: cfg}, nil
}

func (v *OIDCVerifier) VerifyIdentity(
	ctx context.Context,
	idToken string,
) (string, error) {
	set, err := v.keys(ctx, false)
	if err != nil {
		return "", err
	}

	token, err := v.parse(idToken, set)
	if err != nil && isUnknownKeyError(err) {
		if set, err = v.keys(ctx, true); err != nil {
			return "", err
		}
		token, err = v.parse(idToken, set)
	}
	if err != nil {
		if isTokenExpiredError(err) {
			return "", fmt.Errorf("verify id token: %w", core.ErrTokenExpired)
		}
		return "", fmt.Errorf("verify id token: %w", core.ErrTokenInvalid)
	}

	var email string
	if err := token.Get("email", &email); err != nil || email == "" {
		return "", fmt.Errorf("verify id token: missing email: %w", core.ErrTokenInvalid)
	}

	if v.cfg.RequireVerifiedEmail && !emailVerified(token) {
		return "", fmt.Errorf(
			"verify id token: email not verified: %w",
			core.ErrTokenInvalid,
		)
	}

	return strings.ToLower(strings.TrimSpace(email)), nil
}

func (v *OIDCVerifier) parse(idToken string, set jwk.Set) (jwt.Token, error) {
	return jwt.Parse(
		[]byte(idToken),
		jwt.WithKeySet(set, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithAcceptableSkew(v.cfg.ClockSkew),
	)
}

// keys returns the cached provider key set. The first call after startup
// may find the background fetch still running and fetches inline.
func (v *OIDCVerifier) keys(ctx context.Context, force bool) (jwk.Set, error) {
	if !force {
		if set, err := v.cache.Lookup(ctx, v.cfg.JWKSURL); err == nil {
			return set, nil
		}
	}
	set, err := v.cache.Refresh(ctx, v.cfg.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("fetch identity provider keys: %w", err)
	}
	return set, nil
}

func (v *OIDCVerifier) Shutdown(ctx context.Context) error {
	return v.cache.Shutdown(ctx)
}

// emailVerified accepts both the boolean claim and the "true" string some
// providers send.
func emailVerified(token jwt.Token) bool {
	var raw any
	if err := token.Get("email_verified", &raw); err != nil {
		return false
	}
	switch val := raw.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	default:
		return false
	}
}

// isUnknownKeyError reports a kid missing from the cached set, which is
// what a provider key rotation looks like from here.
func isUnknownKeyError(err error) bool {
	return strings.Contains(err.Error(), "failed to find key with key ID")
}
