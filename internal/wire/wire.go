// Package wire provides dependency injection for the demonlist application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/example/demonlist/internal/adapters/cli"
	"github.com/example/demonlist/internal/adapters/httpapi"
	"github.com/example/demonlist/internal/adapters/postgres"
	"github.com/example/demonlist/internal/adapters/sqlite"
	"github.com/example/demonlist/internal/adapters/video"
	"github.com/example/demonlist/internal/app"
	"github.com/example/demonlist/internal/config"
	"github.com/example/demonlist/internal/db"
	"github.com/example/demonlist/internal/logging"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

// Container holds one fully wired application.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *sql.DB
	Demons    primary.DemonService
	Players   primary.PlayerService
	Integrity primary.IntegrityService
}

// repositories is the set of storage adapters for one driver.
type repositories struct {
	transactor secondary.Transactor
	demons     secondary.DemonRepository
	players    secondary.PlayerRepository
	creators   secondary.CreatorRepository
	records    secondary.RecordRepository
	checks     secondary.CheckRepository
}

func repositoriesFor(driver string, database *sql.DB) (repositories, error) {
	switch driver {
	case config.DriverSQLite:
		return repositories{
			transactor: sqlite.NewTransactor(database),
			demons:     sqlite.NewDemonRepository(),
			players:    sqlite.NewPlayerRepository(),
			creators:   sqlite.NewCreatorRepository(),
			records:    sqlite.NewRecordRepository(),
			checks:     sqlite.NewCheckRepository(),
		}, nil
	case config.DriverPostgres:
		return repositories{
			transactor: postgres.NewTransactor(database),
			demons:     postgres.NewDemonRepository(),
			players:    postgres.NewPlayerRepository(),
			creators:   postgres.NewCreatorRepository(),
			records:    postgres.NewRecordRepository(),
			checks:     postgres.NewCheckRepository(),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported db_driver %q", driver)
	}
}

// Build opens the configured store and wires every service on top of it.
// The caller owns the returned container and must Close it.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repos, err := repositoriesFor(cfg.DBDriver, database)
	if err != nil {
		database.Close()
		return nil, err
	}

	videos := video.NewValidator()
	resolver := app.NewPlayerResolver(repos.players, logger)
	creator := app.NewDemonCreator(repos.demons, repos.creators, resolver, videos, logger)
	sizes := app.ListSizes{Main: cfg.ListSize, Extended: cfg.ExtendedListSize}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        database,
		Demons:    app.NewDemonService(repos.transactor, repos.demons, repos.creators, repos.records, creator, resolver, videos, sizes, logger),
		Players:   app.NewPlayerService(repos.transactor, repos.players, resolver),
		Integrity: app.NewIntegrityService(repos.transactor, repos.checks),
	}, nil
}

// Close flushes the logger and releases the database.
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	return c.DB.Close()
}

// HTTPHandler returns the API router over the container's services.
func (c *Container) HTTPHandler() http.Handler {
	return httpapi.SetupRoutes(httpapi.Services{
		Demons:    c.Demons,
		Players:   c.Players,
		Integrity: c.Integrity,
	}, c.Logger)
}

var (
	container *Container
	initErr   error
	once      sync.Once
)

// Default returns the process-wide container for the configuration found in
// the working directory, building it on first use.
func Default() (*Container, error) {
	once.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			initErr = fmt.Errorf("failed to get working directory: %w", err)
			return
		}
		cfg, err := config.Load(dir)
		if err != nil {
			initErr = err
			return
		}
		container, initErr = Build(context.Background(), cfg)
	})
	return container, initErr
}

// Shutdown closes the process-wide container if it was ever built.
func Shutdown() {
	if container != nil {
		_ = container.Close()
	}
}

// DemonAdapter returns a new DemonAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func DemonAdapter() (*cli.DemonAdapter, error) {
	return DemonAdapterWithOutput(os.Stdout)
}

// DemonAdapterWithOutput returns a new DemonAdapter writing to the given output.
func DemonAdapterWithOutput(out io.Writer) (*cli.DemonAdapter, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return cli.NewDemonAdapter(c.Demons, out), nil
}

// PlayerAdapter returns a new PlayerAdapter writing to stdout.
func PlayerAdapter() (*cli.PlayerAdapter, error) {
	return PlayerAdapterWithOutput(os.Stdout)
}

// PlayerAdapterWithOutput returns a new PlayerAdapter writing to the given output.
func PlayerAdapterWithOutput(out io.Writer) (*cli.PlayerAdapter, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return cli.NewPlayerAdapter(c.Players, out), nil
}
