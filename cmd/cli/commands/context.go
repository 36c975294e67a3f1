package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/internal/config"
	"github.com/jakechorley/natshelper/pkg/clients/sheetsclient"
	"github.com/jakechorley/natshelper/pkg/clients/wcaclient"
	"github.com/jakechorley/natshelper/pkg/core/services"
	"github.com/jakechorley/natshelper/pkg/db"
	"github.com/jakechorley/natshelper/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// Clients are created on first use so a command only authenticates with the
// services it talks to.
type AppContext struct {
	Cfg    *config.Config
	Env    string
	Logger *zap.Logger
	Ctx    context.Context

	database *postgres.DB
	wca      *wcaclient.Client
	sheets   *sheetsclient.Client

	// session is set while an interactive session runs
	session *sessionStore
}

// Database connects to PostgreSQL and applies pending migrations
func (app *AppContext) Database() (*postgres.DB, error) {
	if app.database != nil {
		return app.database, nil
	}
	if app.Cfg.Database.URL == "" {
		return nil, fmt.Errorf("no database configured (set database.url or NATSHELPER_DATABASE_URL)")
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.Database.URL, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app.database = database
	return database, nil
}

// WCA creates the WCA API client
func (app *AppContext) WCA() (*wcaclient.Client, error) {
	if app.wca != nil {
		return app.wca, nil
	}

	app.Logger.Info("Initializing WCA client", zap.String("base_url", app.Cfg.WCA.BaseURL))
	client, err := wcaclient.NewClient(app.Ctx, app.Cfg.WCA, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create WCA client: %w", err)
	}

	app.wca = client
	return client, nil
}

// Sheets creates the Google Sheets client
func (app *AppContext) Sheets() (*sheetsclient.Client, error) {
	if app.sheets != nil {
		return app.sheets, nil
	}

	oauthCfg, err := config.LoadGoogleOAuthClient(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load Google OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	app.sheets = client
	return client, nil
}

// Store returns the competition document store selected by the config source.
// Inside an interactive session the store is wrapped by the session cache.
func (app *AppContext) Store() (db.CompetitionStore, error) {
	if app.session != nil && app.session.CompetitionStore != nil {
		return app.session, nil
	}

	store, err := app.sourceStore()
	if err != nil {
		return nil, err
	}
	if app.session != nil {
		app.session.CompetitionStore = store
		return app.session, nil
	}
	return store, nil
}

// forgetCompetition makes an interactive session fetch the competition again
func (app *AppContext) forgetCompetition() {
	if app.session != nil {
		app.session.Forget()
	}
}

func (app *AppContext) sourceStore() (db.CompetitionStore, error) {
	switch app.Cfg.Source {
	case config.SourceWCA:
		client, err := app.WCA()
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.SourcePostgres:
		database, err := app.Database()
		if err != nil {
			return nil, err
		}
		return database, nil
	default:
		return nil, fmt.Errorf("unknown competition source %q", app.Cfg.Source)
	}
}

// editStore saves documents to the configured source and records edit history in PostgreSQL
type editStore struct {
	db.CompetitionStore
	db.ScheduleEditLog
}

// EditStore returns the store used by schedule edits. History always needs the database.
func (app *AppContext) EditStore() (services.EditScheduleStore, error) {
	database, err := app.Database()
	if err != nil {
		return nil, fmt.Errorf("schedule edits are recorded in the database: %w", err)
	}
	store, err := app.Store()
	if err != nil {
		return nil, err
	}
	return &editStore{CompetitionStore: store, ScheduleEditLog: database}, nil
}

// Close releases any open connections
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
		app.database = nil
	}
}
