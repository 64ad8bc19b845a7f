package cookies

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// FileJar persists cookies to a JSON file so a restarted process sees the
// same session cookie a browser would.
type FileJar struct {
	path string
	now  func() time.Time
}

func NewFileJar(path string) *FileJar {
	return &FileJar{path: path, now: time.Now}
}

func (j *FileJar) load() (map[string]storedCookie, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]storedCookie{}, nil
		}
		return nil, fmt.Errorf("failed to read cookie jar: %w", err)
	}

	jar := map[string]storedCookie{}
	if err := json.Unmarshal(data, &jar); err != nil {
		return nil, fmt.Errorf("failed to decode cookie jar: %w", err)
	}
	return jar, nil
}

func (j *FileJar) save(jar map[string]storedCookie) error {
	data, err := json.MarshalIndent(jar, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cookie jar: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookie jar: %w", err)
	}
	return nil
}

func (j *FileJar) Get(name string) (*http.Cookie, bool) {
	jar, err := j.load()
	if err != nil {
		return nil, false
	}
	sc, ok := jar[name]
	if !ok || sc.expired(j.now()) {
		return nil, false
	}
	return sc.cookie(), true
}

func (j *FileJar) Set(c *http.Cookie) error {
	jar, err := j.load()
	if err != nil {
		return err
	}
	if c.MaxAge < 0 {
		delete(jar, c.Name)
	} else {
		jar[c.Name] = toStored(c, j.now())
	}
	return j.save(jar)
}

func (j *FileJar) Expire(name string) error {
	jar, err := j.load()
	if err != nil {
		return err
	}
	delete(jar, name)
	return j.save(jar)
}
