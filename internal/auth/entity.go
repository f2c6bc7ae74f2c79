// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Session records one minted token so it can be listed and revoked.
type Session struct {
	JTI       string     `db:"jti"`
	Email     string     `db:"email"`
	UserAgent string     `db:"user_agent"`
	IPAddress string     `db:"ip_address"`
	IssuedAt  time.Time  `db:"issued_at"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *Session) IsActive() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
