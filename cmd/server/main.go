package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"verbum/internal/config"
	"verbum/internal/db"
	"verbum/internal/handlers"
	"verbum/internal/history"
	"verbum/internal/jobs"
	"verbum/internal/lexicon"
	"verbum/internal/logger"
	"verbum/internal/metrics"
	"verbum/internal/profanity"
	"verbum/internal/server"
	"verbum/internal/validation"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)
	lg := logger.New("verbum")

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		lg.Warn("Failed to load YAML config, continuing without it", "err", err)
	}
	cfg.YAML = yamlCfg

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Content filter
	filter := profanity.New(cfg.EnableProfanityFilter, loadWordList(cfg, lg))
	lg.Info("Profanity filter configured", "enabled", filter.Enabled(), "terms", filter.Size())

	// Lexicon
	adapter, err := lexicon.NewAdapter(loadLexicon(cfg, lg), cfg.LexiconCacheSize)
	if err != nil {
		lg.Fatal("Failed to create lexicon adapter", "err", err)
	}

	// History
	backend, closeBackend, checks := openHistoryBackend(ctx, cfg, lg)
	defer closeBackend()

	store := history.New(ctx, backend, history.Options{
		MaxEntries:      cfg.HistoryMaxEntries,
		CleanupInterval: cfg.HistoryCleanupInterval,
		Logger:          logger.New("history"),
	})
	metrics.Init(store)

	checks = append(checks, handlers.ReadinessCheck{
		Name: "lexicon",
		Check: func(context.Context) error {
			if !adapter.Ready() {
				return lexicon.ErrNotLoaded
			}
			return nil
		},
	})

	srv := server.New(cfg, lg)
	srv.RegisterRoutes(server.Deps{
		Screen:  validation.NewScreen(filter),
		Lexicon: adapter,
		History: store,
		Checks:  checks,
	})

	var wg sync.WaitGroup
	flusher := jobs.NewHistoryFlusher(store, cfg.HistoryCleanupInterval, logger.New("jobs"))
	wg.Go(func() { flusher.Start(ctx) })

	go func() {
		if err := srv.Start(); err != nil {
			lg.Error("Server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Server forced to shutdown", "err", err)
	}

	// Waits for the final history flush.
	wg.Wait()
	lg.Info("Server exited")
}

// loadWordList merges the built-in profanity list with the optional word
// list file and YAML config.
func loadWordList(cfg *config.Config, lg *log.Logger) profanity.WordList {
	wl := profanity.DefaultWordList()
	if cfg.ProfanityWordList != "" {
		extra, err := profanity.LoadWordListFile(cfg.ProfanityWordList)
		if err != nil {
			lg.Warn("Ignoring profanity word list", "path", cfg.ProfanityWordList, "err", err)
		} else {
			wl = wl.Merge(extra)
		}
	}
	return wl.Merge(profanity.WordList{
		Words:      cfg.YAML.ProfanityWords(),
		Substrings: cfg.YAML.ProfanitySubstrings(),
		Allow:      cfg.YAML.ProfanityAllow(),
	})
}

// loadLexicon loads WordNet from WORDNET_DIR, falling back to the built-in
// dictionary. It returns nil when neither loads; lookups then return empty
// results and /readyz reports unavailable.
func loadLexicon(cfg *config.Config, lg *log.Logger) lexicon.Database {
	if cfg.WordNetDir != "" {
		wn, err := lexicon.LoadDir(cfg.WordNetDir)
		if err == nil {
			lg.Info("Loaded WordNet", "dir", cfg.WordNetDir, "lemmas", wn.Lemmas())
			return wn
		}
		lg.Error("Failed to load WordNet, using built-in dictionary", "dir", cfg.WordNetDir, "err", err)
	}

	wn, err := lexicon.Builtin()
	if err != nil {
		lg.Error("Failed to load built-in dictionary", "err", err)
		return nil
	}
	lg.Warn("Using built-in demo seed dictionary, most lookups will be empty; set WORDNET_DIR to a WordNet dict/ directory",
		"lemmas", wn.Lemmas())
	return wn
}

// openHistoryBackend opens the configured backend. A backend that cannot be
// opened falls back to memory so the server still starts.
func openHistoryBackend(ctx context.Context, cfg *config.Config, lg *log.Logger) (history.Backend, func(), []handlers.ReadinessCheck) {
	noop := func() {}

	backend, closer, checks, err := openBackend(ctx, cfg)
	if err != nil {
		lg.Error("Failed to open history backend, keeping history in memory only",
			"backend", cfg.HistoryBackend, "err", err)
		return history.NewMemoryBackend(nil), noop, nil
	}
	lg.Info("History backend ready", "backend", cfg.HistoryBackend)
	if closer == nil {
		closer = noop
	}
	return backend, closer, checks
}

func openBackend(ctx context.Context, cfg *config.Config) (history.Backend, func(), []handlers.ReadinessCheck, error) {
	switch cfg.HistoryBackend {
	case config.BackendFile, "":
		return history.NewFileBackend(cfg.HistoryFile()), nil, nil, nil

	case config.BackendMemory:
		return history.NewMemoryBackend(nil), nil, nil, nil

	case config.BackendBolt:
		b, err := history.OpenBoltBackend(cfg.HistoryBoltFile())
		if err != nil {
			return nil, nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil, nil

	case config.BackendRedis:
		b, err := history.OpenRedisBackend(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil, nil

	case config.BackendPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			database.Close()
			return nil, nil, nil, err
		}
		checks := []handlers.ReadinessCheck{{Name: "database", Check: database.Ping}}
		return database, database.Close, checks, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}
