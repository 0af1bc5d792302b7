// Package server wires configuration, storage, the card catalog and the REST
// API together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tnguye65/pokecollection/internal/logging"
	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/config"
	"github.com/tnguye65/pokecollection/internal/server/repositories/repomanager"
	"github.com/tnguye65/pokecollection/internal/server/rest"
	"github.com/tnguye65/pokecollection/internal/server/services"
)

// runner is anything the app keeps alive until shutdown.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server runner
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, m), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager) *App {
	cat := catalog.New(catalog.Config{
		BaseURL:        c.CatalogBaseURL,
		ConnectTimeout: c.CatalogConnectTimeout,
		ReadTimeout:    c.CatalogReadTimeout,
	}, logger)

	us := services.NewUserService(db, m, c)
	cs := services.NewCollectionService(db, m, cat)

	srv := rest.NewRESTServer(rest.Options{
		Address:            c.EndpointAddrHTTP,
		SecureCookie:       c.SecureCookie,
		LoginRatePerMinute: c.LoginRatePerMinute,
		LoginBurst:         c.LoginBurst,
		Debug:              c.Debug,
	}, logger, us, cs, cat)

	return &App{config: c, logger: logger, db: db, server: srv}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
