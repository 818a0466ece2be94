package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/mamba/internal/config"
	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/logging"
	"github.com/five82/mamba/internal/prefs"
	"github.com/five82/mamba/internal/remote"
	"github.com/five82/mamba/internal/state"
	"github.com/five82/mamba/internal/ui"
)

// Options configure the mamba application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/mamba/prefs.toml
	LogLevel   string // overrides log_level from the config when set
}

// Run boots the mamba TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "err", err)
	}

	ctrl, err := newController(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	logger.Info("mamba starting", "endpoint", cfg.Endpoint, "users", len(cfg.Users),
		"debounce", cfg.Debounce, "debounce_mode", cfg.DebounceMode)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		ThemeName:  userPrefs.Theme,
		HideLinks:  userPrefs.HideLinks,
		PrefsPath:  prefsPath,
		Logger:     logger,
	})

	// Toggles still waiting on the debounce delay are sent before exit.
	ctrl.FlushToggles()
	logger.Info("mamba stopped")
	return err
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// newController wires the remote client, mirror and controller for cfg.
// shell may be nil.
func newController(ctx context.Context, cfg config.Config, logger *log.Logger, shell dashboard.Shell) (*dashboard.Controller, error) {
	client, err := remote.NewClient(cfg.Endpoint,
		remote.WithTimeout(cfg.RequestTimeout),
		remote.WithRateLimit(cfg.RequestsPerSecond),
		remote.WithLogger(logger.With("component", "remote")),
	)
	if err != nil {
		return nil, fmt.Errorf("init remote client: %w", err)
	}

	ctrl, err := dashboard.New(ctx, dashboard.Options{
		Remote:       client,
		Store:        &state.Store{},
		Shell:        shell,
		Users:        cfg.Users,
		Debounce:     cfg.Debounce,
		DebounceMode: cfg.DebounceMode,
		Logger:       logger.With("component", "dashboard"),
	})
	if err != nil {
		return nil, fmt.Errorf("init dashboard: %w", err)
	}
	return ctrl, nil
}

// stderrLogger builds the logger used by the one-shot commands.
func stderrLogger(w io.Writer, level string) (*log.Logger, error) {
	logger, err := logging.New(w, level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
