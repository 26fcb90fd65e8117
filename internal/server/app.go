// Package server assembles and runs the API process: it opens the store,
// applies migrations, builds the services and serves HTTP until a shutdown
// signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/logging"
	"github.com/JokeryEU/shoplistapp-server/internal/server/api"
	"github.com/JokeryEU/shoplistapp-server/internal/server/auth"
	"github.com/JokeryEU/shoplistapp-server/internal/server/config"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/repomanager"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	listService *services.ListService
}

// NewApp opens storage and builds the services described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, "json")

	db, rm, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec(c.AccessTokenSecret, c.RefreshTokenSecret,
		c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("token codec: %w", err)
	}
	hasher := auth.NewHasher(c.BcryptCost)

	// db is nil for the in-memory store.
	var handle dbx.DBTX
	if db != nil {
		handle = db
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(handle, rm, codec, hasher),
		listService: services.NewListService(handle, rm),
	}, nil
}

// openStore returns the repository manager for c.DatabaseDSN. For
// Postgres the connection is checked and migrations are applied.
func openStore(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.UsesMemoryStore() {
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return db, rm, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// Users exposes the account service to out-of-band tools such as the admin command.
func (app *App) Users() *services.UserService { return app.userService }

// Close releases the database connection, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
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
	s := api.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.listService, app.config.IsProduction())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment, "memory_store", app.config.UsesMemoryStore())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
