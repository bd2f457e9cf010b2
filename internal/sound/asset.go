package sound

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Fetcher downloads a remote asset
type Fetcher interface {
	FetchAsset(ctx context.Context, url string) ([]byte, error)
}

// cacheName derives a stable file name for a remote asset URL
func cacheName(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:])[:16]

	ext := ".mp3"
	if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return name + ext
}

// LoadAsset makes the sound at rawURL available on disk inside cacheDir and
// returns its path. The download happens at most once per URL; later calls
// reuse the cached file.
func LoadAsset(ctx context.Context, fetcher Fetcher, rawURL, cacheDir string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("sound URL cannot be empty")
	}

	dest := filepath.Join(cacheDir, cacheName(rawURL))
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		return dest, nil
	}

	data, err := fetcher.FetchAsset(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to download sound: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("failed to download sound: empty asset")
	}

	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := dest + ".part"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write sound file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to store sound file: %w", err)
	}

	return dest, nil
}

// Options selects the notifier built by Setup
type Options struct {
	Enabled  bool
	URL      string
	Player   string // external command; empty means terminal bell
	CacheDir string
	Bell     *Bell
	Logger   *slog.Logger
}

// Setup builds the notifier for a chat session. The remote sound is loaded
// once here; if that fails, or no player is configured, the bell is used.
func Setup(ctx context.Context, fetcher Fetcher, opts Options) Notifier {
	if !opts.Enabled {
		return Silent
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var fallback Notifier = Silent
	if opts.Bell != nil {
		fallback = opts.Bell
	}

	if opts.Player == "" || fetcher == nil {
		return fallback
	}

	file, err := LoadAsset(ctx, fetcher, opts.URL, opts.CacheDir)
	if err != nil {
		logger.Debug("sound asset unavailable, using bell", "url", opts.URL, "error", err)
		return fallback
	}

	return NewPlayer(opts.Player, file, fallback, logger)
}
