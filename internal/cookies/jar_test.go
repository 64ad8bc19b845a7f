package cookies

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     AuthTokenName,
		Value:    value,
		Path:     "/",
		MaxAge:   604800,
		SameSite: http.SameSiteLaxMode,
	}
}

func TestMemoryJar_SetGetExpire(t *testing.T) {
	j := NewMemoryJar()

	_, ok := j.Get(AuthTokenName)
	assert.False(t, ok)

	require.NoError(t, j.Set(sessionCookie("tok")))
	c, ok := j.Get(AuthTokenName)
	require.True(t, ok)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	require.NoError(t, j.Expire(AuthTokenName))
	_, ok = j.Get(AuthTokenName)
	assert.False(t, ok)
}

func TestMemoryJar_MaxAgeExpiry(t *testing.T) {
	j := NewMemoryJar()
	now := time.Now()
	j.now = func() time.Time { return now }

	require.NoError(t, j.Set(sessionCookie("tok")))

	// just before expiry
	j.now = func() time.Time { return now.Add(604800*time.Second - time.Second) }
	_, ok := j.Get(AuthTokenName)
	assert.True(t, ok)

	// past expiry
	j.now = func() time.Time { return now.Add(604800*time.Second + time.Second) }
	_, ok = j.Get(AuthTokenName)
	assert.False(t, ok)
}

func TestMemoryJar_NegativeMaxAgeRemoves(t *testing.T) {
	j := NewMemoryJar()
	require.NoError(t, j.Set(sessionCookie("tok")))

	require.NoError(t, j.Set(&http.Cookie{Name: AuthTokenName, MaxAge: -1}))
	_, ok := j.Get(AuthTokenName)
	assert.False(t, ok)
}

func TestFileJar_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	j := NewFileJar(path)
	require.NoError(t, j.Set(sessionCookie("tok")))

	// a second jar over the same file simulates a restarted process
	j2 := NewFileJar(path)
	c, ok := j2.Get(AuthTokenName)
	require.True(t, ok)
	assert.Equal(t, "tok", c.Value)

	require.NoError(t, j2.Expire(AuthTokenName))
	_, ok = j.Get(AuthTokenName)
	assert.False(t, ok)
}

func TestFileJar_MissingFile(t *testing.T) {
	j := NewFileJar(filepath.Join(t.TempDir(), "does-not-exist.json"))
	_, ok := j.Get(AuthTokenName)
	assert.False(t, ok)
}
