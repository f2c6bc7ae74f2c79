// AngelaMos | 2026
// session.go

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save("")
}

// FileStore keeps the token in a single file readable only by the owner.
type FileStore struct {
	Path string
}

func (f FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// IdentityProvider signs the user in with the external identity service
// and returns the ID token it issued.
type IdentityProvider interface {
	SignIn(ctx context.Context) (idToken string, err error)
}

// TokenMinter exchanges an identity provider ID token for an API session
// token. *Client implements it.
type TokenMinter interface {
	MintToken(ctx context.Context, idToken string) (string, error)
}

// Session is the signed-in identity shared by every request a Client
// makes. The zero value is not usable; call NewSession.
type Session struct {
	mu        sync.RWMutex
	store     TokenStore
	token     string
	email     string
	expiresAt time.Time
}

// NewSession restores a persisted token from store, if there is one.
// An unreadable or expired token is discarded.
func NewSession(store TokenStore) (*Session, error) {
	if store == nil {
		store = &MemoryStore{}
	}
	s := &Session{store: store}

	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return s, nil
	}

	email, expiresAt, err := readClaims(token)
	if err != nil || (!expiresAt.IsZero() && !time.Now().Before(expiresAt)) {
		if clearErr := store.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return s, nil
	}

	s.token, s.email, s.expiresAt = token, email, expiresAt
	return s, nil
}

// Login runs the whole sign-in sequence: identity provider, token mint,
// persist. The session only changes once all three succeed. The session
// email is whatever the API put in the minted token.
func (s *Session) Login(ctx context.Context, idp IdentityProvider, minter TokenMinter) error {
	idToken, err := idp.SignIn(ctx)
	if err != nil {
		return fmt.Errorf("identity provider sign in: %w", err)
	}
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return errors.New("identity provider returned no id token")
	}

	token, err := minter.MintToken(ctx, idToken)
	if err != nil {
		return fmt.Errorf("mint session token: %w", err)
	}

	email, expiresAt, err := readClaims(token)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}

	if err := s.store.Save(token); err != nil {
		return err
	}

	s.mu.Lock()
	s.token, s.email, s.expiresAt = token, email, expiresAt
	s.mu.Unlock()
	return nil
}

func (s *Session) Clear() error {
	s.mu.Lock()
	s.token, s.email, s.expiresAt = "", "", time.Time{}
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) Active() bool {
	return s.Token() != ""
}

// readClaims reads subject and expiry without verifying the signature;
// the API does that on every request.
func readClaims(token string) (string, time.Time, error) {
	parsed, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		return "", time.Time{}, err
	}

	subject, ok := parsed.Subject()
	if !ok || subject == "" {
		return "", time.Time{}, errors.New("token has no subject")
	}

	expiresAt, _ := parsed.Expiration()
	return subject, expiresAt, nil
}
