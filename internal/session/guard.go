package session

import "time"

// Routes known to the guard.
const (
	RouteLogin        = "/login"
	RouteHome         = "/"
	RouteUnauthorized = "/unauthorized"
)

// Guard decides where a navigation to route must go. It returns route
// itself when access is allowed.
func Guard(route string, s Session) string {
	return guardAt(route, s, time.Now())
}

func guardAt(route string, s Session, now time.Time) string {
	authed := s.Authenticated(now)
	switch {
	case !authed && route != RouteLogin:
		return RouteLogin
	case authed && route == RouteLogin:
		return RouteHome
	default:
		return route
	}
}
