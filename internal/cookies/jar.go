// Package cookies provides the process-wide session cookie primitive.
//
// The jar stands in for the browser cookie store: the session store writes
// the auth cookie into it and the route guard reads its presence back. Two
// implementations exist: a JSON-file jar that survives restarts and an
// in-memory jar for tests.
package cookies

import (
	"net/http"
	"time"
)

// AuthTokenName is the name of the session cookie consumed by the route
// guard.
const AuthTokenName = "auth_token"

// Jar stores cookies by name.
type Jar interface {
	// Get returns the unexpired cookie with the given name.
	Get(name string) (*http.Cookie, bool)

	// Set stores a cookie. A negative MaxAge removes it immediately.
	Set(c *http.Cookie) error

	// Expire removes the cookie with the given name.
	Expire(name string) error
}

// storedCookie is the serialized jar entry. Expiry is resolved at Set time
// from MaxAge so that Get does not depend on the original attributes.
type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitzero"`
	SameSite string    `json:"sameSite,omitempty"`
}

func toStored(c *http.Cookie, now time.Time) storedCookie {
	sc := storedCookie{Name: c.Name, Value: c.Value, Path: c.Path}
	if c.MaxAge > 0 {
		sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	} else if !c.Expires.IsZero() {
		sc.Expires = c.Expires
	}
	switch c.SameSite {
	case http.SameSiteLaxMode:
		sc.SameSite = "lax"
	case http.SameSiteStrictMode:
		sc.SameSite = "strict"
	case http.SameSiteNoneMode:
		sc.SameSite = "none"
	}
	return sc
}

func (sc storedCookie) cookie() *http.Cookie {
	c := &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path, Expires: sc.Expires}
	switch sc.SameSite {
	case "lax":
		c.SameSite = http.SameSiteLaxMode
	case "strict":
		c.SameSite = http.SameSiteStrictMode
	case "none":
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func (sc storedCookie) expired(now time.Time) bool {
	return !sc.Expires.IsZero() && !now.Before(sc.Expires)
}
