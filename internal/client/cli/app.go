package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/config"
	"github.com/dmitrijs2005/meggy/internal/client/hooks"
	"github.com/dmitrijs2005/meggy/internal/client/query"
	"github.com/dmitrijs2005/meggy/internal/client/services"
	"github.com/dmitrijs2005/meggy/internal/client/tokenstore"
	"github.com/dmitrijs2005/meggy/internal/filex"
	"github.com/dmitrijs2005/meggy/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger

	auth   services.AuthService
	agents *hooks.Agents
	convs  *hooks.Conversations
	cache  *query.Cache

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB

	mu       sync.Mutex
	mode     Mode
	userName string
	openChat string
}

// NewApp wires the session store, the API client, the services and the
// query cache from cfg.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()
	ttl := tokenstore.WithTTL(cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var (
		store tokenstore.Store
		db    *sql.DB
	)
	if cfg.DatabasePath == "" {
		store = tokenstore.NewMemoryStore(ttl)
	} else {
		if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, err
		}
		var err error
		db, err = client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		store = tokenstore.NewSQLiteStore(db, ttl)
	}

	api, err := client.New(cfg.ServerURL, store,
		client.WithLogger(log),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRefreshOnUnauthorized(cfg.RefreshOnUnauthorized),
	)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	app := newApp(cfg, log,
		services.NewAuthService(api, store, log),
		services.NewAgentService(api),
		services.NewConversationService(api),
	)
	app.db = db
	return app, nil
}

func newApp(cfg *config.Config, log logging.Logger, auth services.AuthService, agents services.AgentService, convs services.ConversationService) *App {
	if log == nil {
		log = logging.Discard()
	}
	cache := query.NewCache()
	return &App{
		config: cfg,
		log:    log,
		auth:   auth,
		agents: hooks.NewAgents(agents, cache),
		convs:  hooks.NewConversations(convs, cache),
		cache:  cache,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) setOpenChat(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.openChat = id
}

func (a *App) getOpenChat() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.openChat
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.IsAuthenticated(ctx)
}

// checkOnline pings the server once and records the result.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done, switching the prompt between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
