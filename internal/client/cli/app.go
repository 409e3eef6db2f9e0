package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/avelichko/snipcli/internal/client/api"
	"github.com/avelichko/snipcli/internal/client/config"
	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/client/query"
	"github.com/avelichko/snipcli/internal/client/services"
	"github.com/avelichko/snipcli/internal/client/session"
	"github.com/avelichko/snipcli/internal/client/storage"
	"github.com/avelichko/snipcli/internal/cryptox"
	"github.com/avelichko/snipcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the wired client: the session manager, the typed API services, and
// the list-view controller. One App serves one REPL run.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	session   *session.Manager
	urls      services.URLService
	analytics services.AnalyticsService
	list      *query.Controller[models.URL]
	reader    *bufio.Reader
}

// NewApp builds the full client stack. Wiring order matters: the gateway
// reads tokens from the session manager, the manager calls the auth service,
// and the auth service calls the gateway, so the manager is constructed first
// and the auth service is attached after the gateway exists.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(c.KeyPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading key: %w", err)
	}

	store := session.NewCredentialStore(db, key)
	manager := session.NewManager(store, log)

	gw, err := api.NewHTTPGateway(c.BaseURL, c.RequestTimeout, manager, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	gw.SetUnauthorizedHandler(manager.Invalidate)

	urls := services.NewURLService(gw)
	manager.AttachAuth(services.NewAuthService(gw))

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		session:   manager,
		urls:      urls,
		analytics: services.NewAnalyticsService(gw),
		reader:    bufio.NewReader(os.Stdin),
	}

	manager.OnExpired(func() {
		printlnFn("Session expired, please log in again.")
	})

	a.list = query.NewController(a.fetchPage, query.Options[models.URL]{
		Debounce: c.DebounceInterval,
		PageSize: c.PageSize,
		Sort:     "createdAt",
		OnUpdate: a.renderPage,
		OnError: func(err error) {
			printlnFn("Could not refresh the list:", err.Error())
		},
		Logger: log,
	})

	return a, nil
}

// fetchPage adapts the URL service to the list controller.
func (a *App) fetchPage(ctx context.Context, d query.Descriptor) (query.Page[models.URL], error) {
	p, err := a.urls.List(ctx, services.ListParams{
		Page:      d.Page,
		Size:      d.Size,
		Sort:      d.Sort,
		Direction: string(d.Direction),
		Search:    d.Search,
	})
	if err != nil {
		return query.Page[models.URL]{}, err
	}
	return query.Page[models.URL]{
		Items:         p.Content,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if p := a.session.Current(); p != nil {
		return fmt.Sprintf("(%s) ", p.Email)
	}
	return ""
}

// Run restores any saved session and enters the REPL. It blocks until the
// user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to SnipURL CLI (type 'help' for commands)")

	a.session.Restore(ctx)
	if p := a.session.Current(); p != nil {
		printlnFn(fmt.Sprintf("Restored session for %s", p.Email))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the list controller and local database.
func (a *App) Close() {
	a.list.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database", "error", err)
	}
}
