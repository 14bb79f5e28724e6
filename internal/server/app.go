// Package server wires the development server together: configuration,
// in-memory repositories, services and the HTTP API, and runs it until a
// termination signal arrives.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/meggy/internal/logging"
	"github.com/dmitrijs2005/meggy/internal/server/auth"
	"github.com/dmitrijs2005/meggy/internal/server/config"
	"github.com/dmitrijs2005/meggy/internal/server/httpapi"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/meggy/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, true)

	rm := repomanager.NewInMemoryRepositoryManager()
	tokens := auth.NewIssuer(c.SecretKey, c.AccessTokenTTL, c.RefreshTokenTTL)

	srv := httpapi.NewServer(c.Address, logger,
		services.NewUserService(rm, tokens),
		services.NewAgentService(rm),
		services.NewConversationService(rm),
	)

	return &App{config: c, logger: logger, http: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	if app.config.SecretKey == "secretKey" {
		app.logger.Warn(ctx, "using the default JWT secret; set -s or secret_key outside development")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
