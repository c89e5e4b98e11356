// Package session holds the signed-in staff session: bearer token,
// permission codes, and the route guard that depends on them.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gravitrone/backoffice/cli/internal/listctl"
)

// ErrNoSession is returned when no token has been persisted.
var ErrNoSession = errors.New("no active session")

// Session is the process-wide auth state. It is replaced wholesale on
// login and cleared wholesale on logout.
type Session struct {
	Token       string
	Permissions []string
	Username    string
	ExpiresAt   time.Time
}

// New builds a session from a login response, reading expiry from the token.
func New(token, username string, permissions []string) Session {
	s := Session{
		Token:       token,
		Username:    username,
		Permissions: append([]string(nil), permissions...),
	}
	if exp, err := ParseExpiry(token); err == nil {
		s.ExpiresAt = exp
	}
	return s
}

// Authenticated reports whether the session has a token that has not expired
// at now. Tokens without an exp claim never expire locally.
func (s Session) Authenticated(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Expired reports whether the token carries an exp claim in the past.
func (s Session) Expired(now time.Time) bool {
	return s.Token != "" && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Gate returns the permission gate for this session.
func (s Session) Gate() listctl.Gate {
	return listctl.NewGate(s.Permissions)
}

// ParseExpiry reads the exp claim without verifying the signature. The
// backend stays the authority on validity.
func ParseExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
