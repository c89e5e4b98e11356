package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	now := time.Now()
	authed := Session{Token: "tok"}
	expired := Session{Token: "tok", ExpiresAt: now.Add(-time.Second)}

	cases := []struct {
		name  string
		route string
		sess  Session
		want  string
	}{
		{"anonymous home", RouteHome, Session{}, RouteLogin},
		{"anonymous list", "/orders", Session{}, RouteLogin},
		{"anonymous unauthorized page", RouteUnauthorized, Session{}, RouteLogin},
		{"anonymous login", RouteLogin, Session{}, RouteLogin},
		{"authed login", RouteLogin, authed, RouteHome},
		{"authed list", "/orders", authed, "/orders"},
		{"authed unauthorized page", RouteUnauthorized, authed, RouteUnauthorized},
		{"expired list", "/orders", expired, RouteLogin},
		{"expired login", RouteLogin, expired, RouteLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, guardAt(tc.route, tc.sess, now))
		})
	}
}

func TestGuardUsesWallClock(t *testing.T) {
	assert.Equal(t, RouteLogin, Guard("/users", Session{}))
	assert.Equal(t, "/users", Guard("/users", Session{Token: "tok"}))
}
