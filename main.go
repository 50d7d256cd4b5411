package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/auth"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/config"
	"github.com/pawshelter/petcare/internal/credstore"
	"github.com/pawshelter/petcare/internal/logging"
	"github.com/pawshelter/petcare/internal/monitor"
	"github.com/pawshelter/petcare/internal/router"
	"github.com/pawshelter/petcare/internal/session"
	"github.com/pawshelter/petcare/internal/ui"
	"github.com/pawshelter/petcare/internal/ui/messages"
	"github.com/pawshelter/petcare/internal/ui/petlist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	apiURL := flag.String("api", "", "API base URL (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logFile, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logFile}); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	var storage session.Storage = db
	if cfg.Credentials.Backend == config.BackendRedis {
		rs, err := credstore.Dial(ctx, cfg.Credentials.RedisAddr, cfg.Credentials.RedisDB, cfg.Credentials.RedisPrefix)
		if err != nil {
			return err
		}
		defer rs.Close()
		storage = rs
	}

	store := session.NewStore(storage)
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	client.SetTokenSource(store.Token)

	store.Initialize(ctx)

	// Warm the pet cache while the UI starts.
	go prefetch(client, db)

	app := ui.NewApp(cfg, client, db, store, auth.NewActions(client, store), router.Default())
	p := tea.NewProgram(app, tea.WithAltScreen())
	// Transitions may fire inside Update, where a blocking Send would
	// deadlock the event loop.
	unsubscribe := store.Subscribe(func(st session.State) {
		go p.Send(messages.SessionChangedMsg{State: st})
	})
	defer unsubscribe()

	mon := monitor.New(cfg.BookingPollInterval, client, db, store)
	mon.Start(p.Send)
	defer mon.Stop()

	slog.Info("starting", "api", cfg.APIBaseURL, "credentials", cfg.Credentials.Backend)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func prefetch(client *api.Client, db *cache.DB) {
	pets, err := client.ListPets(context.Background())
	if err != nil {
		slog.Warn("prefetching pets", "err", err)
		return
	}
	if err := db.PutPetList(petlist.CacheKey, pets); err != nil {
		slog.Warn("caching pets", "err", err)
	}
}
