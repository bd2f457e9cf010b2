package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/luxcarwash/luxchat/internal/api"
	"github.com/luxcarwash/luxchat/internal/config"
	"github.com/luxcarwash/luxchat/internal/render"
	"github.com/luxcarwash/luxchat/internal/sound"
	"github.com/luxcarwash/luxchat/internal/telemetry"
	"github.com/luxcarwash/luxchat/internal/tui"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	server  string
	noSound bool
	verbose bool
}

// session is everything a chat command needs, built from config and flags
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	client   api.ChatClientInterface
	notifier sound.Notifier

	closers []func() error
}

// resolveConfig loads the config file and applies flag overrides
func resolveConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if flags.server != "" {
		cfg.ServerURL = flags.server
	}
	if flags.noSound {
		cfg.Sound = false
	}
	if flags.verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openSession wires logging, telemetry, the chat client and the sound hook
func openSession(ctx context.Context, deps *Dependencies, flags *globalFlags) (*session, error) {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}

	if deps.DisableLogFile {
		s.logger = telemetry.Discard()
	} else {
		logPath, err := config.GetLogPath(cfg)
		if err != nil {
			return nil, err
		}
		logger, closer, err := telemetry.InitLogger(logPath, cfg.Verbose)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		s.closers = append(s.closers, closer.Close)
	}

	if cfg.Telemetry {
		dir, err := config.GetConfigDir()
		if err != nil {
			s.Close()
			return nil, err
		}
		shutdown, err := telemetry.InitOTel(ctx, filepath.Join(dir, "telemetry"), Version)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		s.closers = append(s.closers, func() error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return shutdown(shutdownCtx)
		})
	}

	client, err := deps.NewClient(cfg, s.logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.client = client

	s.notifier = setupSound(ctx, deps, cfg, client, s.logger)

	if !render.SetTUITheme(cfg.TUITheme) {
		s.logger.Warn("unknown TUI theme, keeping default", "theme", cfg.TUITheme)
	}
	tui.UpdateTheme()

	s.logger.Info("session started",
		"server", cfg.ServerURL,
		"sound", cfg.Sound,
		"telemetry", cfg.Telemetry,
	)
	return s, nil
}

// setupSound builds the notification hook. The client doubles as the asset
// fetcher when it can download files.
func setupSound(ctx context.Context, deps *Dependencies, cfg config.Config, client api.ChatClientInterface, logger *slog.Logger) sound.Notifier {
	var fetcher sound.Fetcher
	if f, ok := client.(sound.Fetcher); ok {
		fetcher = f
	}

	var bell *sound.Bell
	if deps.Bell != nil {
		bell = sound.NewBell(deps.Bell)
	}

	player := cfg.SoundPlayer
	cacheDir := ""
	if cfg.Sound && player != "" {
		dir, err := config.GetCacheDir()
		if err != nil {
			logger.Debug("no cache directory for sound, using bell", "error", err)
			player = ""
		}
		cacheDir = dir
	}

	return sound.Setup(ctx, fetcher, sound.Options{
		Enabled:  cfg.Sound,
		URL:      cfg.SoundURL,
		Player:   player,
		CacheDir: cacheDir,
		Bell:     bell,
		Logger:   logger,
	})
}

// Close releases the client and flushes logs and telemetry
func (s *session) Close() error {
	if s.client != nil {
		s.client.Close()
	}

	var errs []error
	// telemetry flushes before the log file closes
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ io.Closer = (*session)(nil)
