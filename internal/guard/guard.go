// Package guard implements the route-guarding policy: given a navigation
// target and the session cookie's presence, decide whether to render it or
// redirect. The decision is made before any protected content is shown.
package guard

import "strings"

const (
	loginPath     = "/login"
	registerPath  = "/register"
	dashboardPath = "/dashboard"
)

// Decision is the outcome of evaluating a navigation target.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect to " + loginPath
	case RedirectToDashboard:
		return "redirect to " + dashboardPath
	}
	return "unknown"
}

// Target returns the redirect destination, or an empty string for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectToLogin:
		return loginPath
	case RedirectToDashboard:
		return dashboardPath
	}
	return ""
}

// Decide evaluates path against the session token. Anything under the
// dashboard requires a token; the auth pages redirect away when a token is
// already present.
func Decide(path, token string) Decision {
	hasToken := token != ""

	if strings.HasPrefix(path, dashboardPath) && !hasToken {
		return RedirectToLogin
	}
	if (path == loginPath || path == registerPath) && hasToken {
		return RedirectToDashboard
	}
	return Allow
}
