// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

// TokenRequest carries the ID token the identity provider issued at
// sign-in.
type TokenRequest struct {
	IDToken string `json:"id_token" validate:"required,max=8192"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}
