package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/avoronov/blogkeeper/internal/client"
	"github.com/avoronov/blogkeeper/internal/config"
	"github.com/avoronov/blogkeeper/internal/cookies"
	"github.com/avoronov/blogkeeper/internal/guard"
	"github.com/avoronov/blogkeeper/internal/logging"
	"github.com/avoronov/blogkeeper/internal/repositories/kv"
	"github.com/avoronov/blogkeeper/internal/repositories/users"
	"github.com/avoronov/blogkeeper/internal/stores/posts"
	"github.com/avoronov/blogkeeper/internal/stores/session"
	"github.com/avoronov/blogkeeper/internal/tokens"

	_ "modernc.org/sqlite"
)

// App is the composition root of the CLI. It owns the two stores and the
// interactive reader.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB // nil when running on the in-memory fallback
	api     client.Client
	session *session.Store
	posts   *posts.Store
	reader  *bufio.Reader
}

// NewApp wires the full client: key/value storage (SQLite, with an
// in-memory fallback when the database cannot be opened), the cookie jar,
// the session store, and the post collection store talking to the remote
// endpoint with the current session token.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewDefault()

	var store kv.Repository
	db, err := kv.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Warn(ctx, "local database unavailable, using in-memory storage", "dsn", cfg.DatabaseDSN, "error", err)
		store = kv.NewMemoryRepository()
	} else {
		store = kv.NewSQLiteRepository(db)
	}

	jar := cookies.NewFileJar(cfg.CookieJarPath)
	issuer := tokens.NewIssuer([]byte(cfg.TokenSecret), cfg.SessionTTL)
	sess := session.NewStore(users.NewKVRepository(store), store, jar, issuer, log, cfg.SimulatedLatency)

	api := client.NewHTTPClient(cfg.APIEndpoint, cfg.RequestTimeout, sess.Token)
	postStore := posts.NewStore(api, store, log, cfg.SimulatedLatency)

	return &App{
		config:  cfg,
		log:     log,
		db:      db,
		api:     api,
		session: sess,
		posts:   postStore,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session from the cookie jar, loads the post collection,
// and enters the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.CheckAuth(ctx)
	if err := a.posts.Fetch(ctx); err != nil {
		a.log.Warn(ctx, "initial fetch failed, continuing with cached collection", "error", err)
	}

	printlnFn("Welcome to blogkeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the remote client and the local database.
func (a *App) Close() {
	a.api.Close()
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u, ok := a.session.User(); ok {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return "(anonymous)"
}

// navigate evaluates the route-guard policy for path. When the guard
// redirects, the redirect target is printed and false is returned; the
// caller skips the command body.
func (a *App) navigate(path string) bool {
	d := guard.Decide(path, a.session.Token())
	if d == guard.Allow {
		return true
	}
	printlnFn(d.String())
	return false
}
