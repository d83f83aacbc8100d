package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/raido/internal/active"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/settings"
	"github.com/starford/raido/internal/storage"
)

// bootstrap opens the storage, settings, and index stack shared by the
// one-shot commands. The logger writes to stderr so stdout stays free for
// command output (and for the MCP stdio transport).
func bootstrap(cfg *Config) (storage.Provider, *settings.Store, *index.DB, *slog.Logger, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}
	settingsStore, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("init settings: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(db, store, logger); err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("index sync: %w", err)
	}
	return store, settingsStore, db, logger, nil
}

// RunNormalize performs a one-shot embed normalization of the note at path
// and prints the result as JSON.
func RunNormalize(ctx context.Context, cfg *Config, path string) error {
	store, _, db, _, err := bootstrap(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := noteservice.NewService(store, db)
	res, err := svc.NormalizeEmbeds(ctx, path)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", path, err)
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
	return nil
}

// RunMCP serves the MCP server over stdio until the client disconnects.
func RunMCP(cfg *Config) error {
	store, settingsStore, db, _, err := bootstrap(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := noteservice.NewService(store, db)
	srv := mcpserver.New(svc, settingsStore, active.NewTracker())
	return srv.ServeStdio()
}
