package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/tbctxt/readycheck/internal/common"
	"github.com/tbctxt/readycheck/internal/config"
	"github.com/tbctxt/readycheck/internal/engine"
	"github.com/tbctxt/readycheck/internal/refdata"
	"github.com/tbctxt/readycheck/internal/resolver"
	"github.com/tbctxt/readycheck/internal/search"
	"github.com/tbctxt/readycheck/internal/storage"
	"github.com/tbctxt/readycheck/internal/tooltip"
)

// initStorage opens the session database with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/readycheck/readycheck.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// appComponents bundles the wired-up readiness pipeline for commands.
type appComponents struct {
	store    *refdata.Store
	resolver *resolver.Resolver
	engine   *engine.Engine
	fetcher  *tooltip.Fetcher
}

// Close releases the tooltip fetcher's rate limiter.
func (a *appComponents) Close() {
	if a.fetcher != nil {
		a.fetcher.Close()
	}
}

// buildComponents wires the reference data, resolver, tooltip fetcher, and
// engine from viper configuration.
func buildComponents(progress func(done, total int)) (*appComponents, error) {
	store, err := refdata.Load(config.ExpandPath(viper.GetString("data.dir")))
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	var searcher search.Searcher
	if baseURL := viper.GetString("search.base_url"); baseURL != "" {
		client, err := search.NewClient(search.Config{
			BaseURL: baseURL,
			Region:  viper.GetString("search.region"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		searcher = client
	}

	fetcher := tooltip.NewFetcher(tooltip.Config{
		RequestsPerMinute: viper.GetInt("tooltip.requests_per_minute"),
		Timeout:           viper.GetDuration("tooltip.timeout"),
	})

	res := resolver.New(store, searcher)
	eng := engine.New(store, res, fetcher, engine.Config{
		Concurrency: viper.GetInt("engine.concurrency"),
		Progress:    progress,
	})

	return &appComponents{
		store:    store,
		resolver: res,
		engine:   eng,
		fetcher:  fetcher,
	}, nil
}

// loadSavedSession returns the default session if one exists, or nil.
func loadSavedSession(ctx context.Context) *storage.Session {
	store, err := initStorage(ctx)
	if err != nil {
		return nil
	}
	defer func() { _ = store.Close() }()

	session, err := store.GetSession(ctx, storage.DefaultSessionID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			common.ComponentLogger("cli").Warn("failed to load session", "error", err)
		}
		return nil
	}
	return session
}

// saveSession persists the default session; failures are logged, not fatal.
func saveSession(ctx context.Context, class, spec, phase, gearText string) {
	store, err := initStorage(ctx)
	if err != nil {
		common.ComponentLogger("cli").Warn("failed to open session store", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	err = store.SaveSession(ctx, storage.Session{
		ID:       storage.DefaultSessionID,
		GearText: gearText,
		Class:    class,
		Spec:     spec,
		Phase:    phase,
	})
	if err != nil {
		common.ComponentLogger("cli").Warn("failed to save session", "error", err)
	}
}
