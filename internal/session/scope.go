package session

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ScopeEnv overrides the CLI session scope.
const ScopeEnv = "TASKVVTS_SESSION"

// CLIScope picks the scope id for one-shot commands. Without an explicit
// value, every command started from the same shell shares the parent pid's
// scope, which is the closest thing a terminal has to a browser tab.
func CLIScope(explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(ScopeEnv)); v != "" {
		return v
	}
	return "ppid-" + strconv.Itoa(os.Getppid())
}

// NewScope returns a fresh scope for a long-running program (one TUI run).
func NewScope() string {
	return "tui-" + uuid.NewString()
}

// Claims is the unverified view of a bearer token. The client never checks
// signatures; the server remains the authority.
type Claims struct {
	Subject   string    `json:"subject,omitempty"`
	IssuedAt  time.Time `json:"issuedAt,omitzero"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	Expired   bool      `json:"expired"`
}

// DecodeClaims reads the registered claims of a JWT without verifying it.
func DecodeClaims(token string, now time.Time) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, err
	}
	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
		c.Expired = !now.Before(rc.ExpiresAt.Time)
	}
	return c, nil
}
