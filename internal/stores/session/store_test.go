package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/avoronov/blogkeeper/internal/common"
	"github.com/avoronov/blogkeeper/internal/cookies"
	"github.com/avoronov/blogkeeper/internal/logging"
	"github.com/avoronov/blogkeeper/internal/repositories/kv"
	"github.com/avoronov/blogkeeper/internal/repositories/users"
	"github.com/avoronov/blogkeeper/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *Store
	kv    *kv.MemoryRepository
	jar   *cookies.MemoryJar
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kvRepo := kv.NewMemoryRepository()
	jar := cookies.NewMemoryJar()
	issuer := tokens.NewIssuer([]byte("test-secret"), time.Hour)
	store := NewStore(users.NewKVRepository(kvRepo), kvRepo, jar, issuer, logging.NewDefault(), 0)
	return &fixture{store: store, kv: kvRepo, jar: jar}
}

func TestLogin_NoAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Login(context.Background(), "x@x.com", "secret")
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
	assert.Equal(t, StateAnonymous, f.store.State())
	assert.False(t, f.store.IsAuthenticated())
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.store.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)
	assert.Equal(t, "x@x.com", registered.Email)
	assert.Equal(t, "X", registered.Name)
	assert.NotEmpty(t, registered.ID)
	require.True(t, f.store.IsAuthenticated())

	require.NoError(t, f.store.Logout(ctx))

	user, err := f.store.Login(ctx, "x@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered, user)
	assert.NotEmpty(t, f.store.Token())
	assert.Equal(t, StateAuthenticated, f.store.State())
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)
	require.NoError(t, f.store.Logout(ctx))

	_, err = f.store.Login(ctx, "x@x.com", "wrong")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
	assert.False(t, f.store.IsAuthenticated())
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)

	_, err = f.store.Register(ctx, "x@x.com", "other", "Y")
	assert.ErrorIs(t, err, common.ErrAccountExists)
	assert.Equal(t, StateAnonymous, f.store.State())
}

func TestLogin_SetsCookieAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)

	c, ok := f.jar.Get(cookies.AuthTokenName)
	require.True(t, ok)
	assert.Equal(t, f.store.Token(), c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	raw, err := f.kv.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.NotNil(t, raw)
	// the persisted blob must not leak password material
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "passwordHash")
}

func TestLogout_ClearsSessionButKeepsAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)

	require.NoError(t, f.store.Logout(ctx))

	assert.False(t, f.store.IsAuthenticated())
	assert.Empty(t, f.store.Token())
	_, ok := f.store.User()
	assert.False(t, ok)
	_, ok = f.jar.Get(cookies.AuthTokenName)
	assert.False(t, ok)

	raw, err := f.kv.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.Nil(t, raw)

	// the account survives for future logins
	_, err = f.store.Login(ctx, "x@x.com", "secret")
	require.NoError(t, err)
}

func TestCheckAuth_AdoptsCookieAfterRestart(t *testing.T) {
	kvRepo := kv.NewMemoryRepository()
	jar := cookies.NewMemoryJar()
	issuer := tokens.NewIssuer([]byte("test-secret"), time.Hour)
	log := logging.NewDefault()
	ctx := context.Background()

	first := NewStore(users.NewKVRepository(kvRepo), kvRepo, jar, issuer, log, 0)
	registered, err := first.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)
	token := first.Token()

	// a second store over the same kv and jar simulates a page reload
	second := NewStore(users.NewKVRepository(kvRepo), kvRepo, jar, issuer, log, 0)
	require.False(t, second.IsAuthenticated())

	second.CheckAuth(ctx)
	assert.Equal(t, token, second.Token())
	user, ok := second.User()
	require.True(t, ok)
	assert.Equal(t, registered, user)
	assert.True(t, second.IsAuthenticated())

	// idempotent
	second.CheckAuth(ctx)
	assert.Equal(t, token, second.Token())
}

func TestCheckAuth_IgnoresInvalidCookie(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.jar.Set(NewSessionCookie("garbage-token")))
	f.store.CheckAuth(context.Background())

	assert.Empty(t, f.store.Token())
	assert.False(t, f.store.IsAuthenticated())
}

func TestCheckAuth_NoCookie(t *testing.T) {
	f := newFixture(t)
	f.store.CheckAuth(context.Background())
	assert.Empty(t, f.store.Token())
}

func TestStore_ToleratesAbsentStorageAndJar(t *testing.T) {
	issuer := tokens.NewIssuer([]byte("test-secret"), time.Hour)
	store := NewStore(users.NewKVRepository(nil), nil, nil, issuer, logging.NewDefault(), 0)
	ctx := context.Background()

	// no kv: registration degrades but must not panic or corrupt state
	_, err := store.Register(ctx, "x@x.com", "secret", "X")
	require.NoError(t, err)
	require.NoError(t, store.Logout(ctx))
	store.CheckAuth(ctx)

	_, err = store.Login(ctx, "x@x.com", "secret")
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}
