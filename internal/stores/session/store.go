// Package session implements the session store: it owns the current user
// identity and session token, simulating login/register/logout against the
// local user table, the persisted key/value layer, and the session cookie.
//
// The invariant maintained here is that a non-empty token and a non-nil
// user are set and cleared together; the store never reports an
// authenticated session with only one of them.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avoronov/blogkeeper/internal/common"
	"github.com/avoronov/blogkeeper/internal/cookies"
	"github.com/avoronov/blogkeeper/internal/logging"
	"github.com/avoronov/blogkeeper/internal/models"
	"github.com/avoronov/blogkeeper/internal/repositories/kv"
	"github.com/avoronov/blogkeeper/internal/repositories/users"
	"github.com/avoronov/blogkeeper/internal/tokens"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// State is the authentication lifecycle state.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

const (
	sessionKey = "session"

	// cookieMaxAge matches the original app's ~7-day session cookie.
	cookieMaxAge = 7 * 24 * 60 * 60
)

// persistedSession is the blob stored under sessionKey for rehydration.
type persistedSession struct {
	User  *models.User `json:"user,omitempty"`
	Token string       `json:"token"`
}

// Store owns the current user identity and session token.
type Store struct {
	users   users.Repository
	kv      kv.Repository // may be nil: persistence becomes a no-op
	jar     cookies.Jar   // may be nil: cookie handling becomes a no-op
	issuer  *tokens.Issuer
	log     logging.Logger
	latency time.Duration

	mu    sync.Mutex
	state State
	user  *models.User
	token string
}

// NewStore constructs an anonymous session store. Call CheckAuth once at
// startup to reconcile with a previously written session cookie.
func NewStore(usersRepo users.Repository, kvRepo kv.Repository, jar cookies.Jar, issuer *tokens.Issuer, log logging.Logger, latency time.Duration) *Store {
	return &Store{
		users:   usersRepo,
		kv:      kvRepo,
		jar:     jar,
		issuer:  issuer,
		log:     log,
		latency: latency,
		state:   StateAnonymous,
	}
}

// Login authenticates against the simulated user table. Failures are
// reported as common.ErrAccountNotFound or common.ErrWrongPassword and
// transition the store back to anonymous.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	s.setState(StateAuthenticating)
	s.simulateLatency(ctx)

	rec, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.reset()
		if errors.Is(err, common.ErrAccountNotFound) {
			return models.User{}, fmt.Errorf("login: %w", common.ErrAccountNotFound)
		}
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)) != nil {
		s.reset()
		return models.User{}, fmt.Errorf("login: %w", common.ErrWrongPassword)
	}

	return s.establish(ctx, rec.User())
}

// Register creates a new account and then behaves like a successful login.
// Fails with common.ErrAccountExists when the email is already registered.
func (s *Store) Register(ctx context.Context, email, password, name string) (models.User, error) {
	s.setState(StateAuthenticating)
	s.simulateLatency(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.reset()
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	rec := &users.Record{
		ID:           "user_" + uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, rec); err != nil {
		s.reset()
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	return s.establish(ctx, rec.User())
}

// Logout clears the in-memory session, expires the cookie, and removes the
// persisted session. Registered accounts are left intact.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()

	var errs []error
	if s.jar != nil {
		if err := s.jar.Expire(cookies.AuthTokenName); err != nil {
			errs = append(errs, fmt.Errorf("expire session cookie: %w", err))
		}
	}
	if s.kv != nil {
		if err := s.kv.Remove(ctx, sessionKey); err != nil {
			errs = append(errs, fmt.Errorf("remove persisted session: %w", err))
		}
	}
	return errors.Join(errs...)
}

// CheckAuth reconciles in-memory state with the session cookie after a
// restart: when the cookie holds a valid token and memory does not, the
// cookie's token is adopted and the persisted user restored when it
// matches. The cookie is the source of truth for "is there a live
// session". Idempotent.
func (s *Store) CheckAuth(ctx context.Context) {
	if s.jar == nil {
		return
	}
	c, ok := s.jar.Get(cookies.AuthTokenName)
	if !ok || c.Value == "" {
		return
	}

	s.mu.Lock()
	hasToken := s.token != ""
	s.mu.Unlock()
	if hasToken {
		return
	}

	token := c.Value
	if s.issuer != nil {
		if _, err := s.issuer.Verify(token); err != nil {
			s.log.Warn(ctx, "ignoring stale session cookie", "error", err)
			return
		}
	}

	var user *models.User
	if s.kv != nil {
		if raw, err := s.kv.Get(ctx, sessionKey); err == nil && raw != nil {
			var ps persistedSession
			if json.Unmarshal(raw, &ps) == nil && ps.Token == token {
				user = ps.User
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if user != nil {
		s.user = user
		s.state = StateAuthenticated
	}
}

// User returns the current user, if any. Password material is never part
// of it.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token returns the current session token, or an empty string.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether both a user and a token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// NewSessionCookie builds the auth cookie for a token: root path, ~7-day
// expiry, lax same-site.
func NewSessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     cookies.AuthTokenName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

// establish issues a fresh token, stores user+token together, and persists
// both the cookie and the session blob.
func (s *Store) establish(ctx context.Context, user models.User) (models.User, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		s.reset()
		return models.User{}, fmt.Errorf("issue session token: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.state = StateAuthenticated
	s.mu.Unlock()

	if s.jar != nil {
		if err := s.jar.Set(NewSessionCookie(token)); err != nil {
			s.log.Warn(ctx, "failed to write session cookie", "error", err)
		}
	}
	if s.kv != nil {
		raw, err := json.Marshal(persistedSession{User: &user, Token: token})
		if err == nil {
			err = s.kv.Set(ctx, sessionKey, raw)
		}
		if err != nil {
			s.log.Warn(ctx, "failed to persist session", "error", err)
		}
	}

	return user, nil
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// reset returns the store to anonymous, clearing user and token together.
func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
}

func (s *Store) simulateLatency(ctx context.Context) {
	if s.latency <= 0 {
		return
	}
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
	}
}
