package cookies

import (
	"net/http"
	"sync"
	"time"
)

// MemoryJar is an in-memory Jar for tests and storage-less environments.
type MemoryJar struct {
	mu  sync.Mutex
	jar map[string]storedCookie
	now func() time.Time
}

func NewMemoryJar() *MemoryJar {
	return &MemoryJar{jar: map[string]storedCookie{}, now: time.Now}
}

func (j *MemoryJar) Get(name string) (*http.Cookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	sc, ok := j.jar[name]
	if !ok || sc.expired(j.now()) {
		return nil, false
	}
	return sc.cookie(), true
}

func (j *MemoryJar) Set(c *http.Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if c.MaxAge < 0 {
		delete(j.jar, c.Name)
		return nil
	}
	j.jar[c.Name] = toStored(c, j.now())
	return nil
}

func (j *MemoryJar) Expire(name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.jar, name)
	return nil
}
