package sound

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luxcarwash/luxchat/internal/telemetry"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) FetchAsset(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBell(&buf)

	bell.Notify()
	bell.Notify()

	if buf.String() != "\a\a" {
		t.Errorf("Expected two BEL characters, got %q", buf.String())
	}
}

func TestNotifierFunc(t *testing.T) {
	calls := 0
	var n Notifier = NotifierFunc(func() { calls++ })
	n.Notify()
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	Silent.Notify()
}

func TestPlayer(t *testing.T) {
	var gotName string
	var gotArgs []string

	p := NewPlayer("paplay", "/tmp/ding.mp3", nil, telemetry.Discard())
	p.start = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	p.Notify()

	if gotName != "paplay" || len(gotArgs) != 1 || gotArgs[0] != "/tmp/ding.mp3" {
		t.Errorf("Unexpected command %s %v", gotName, gotArgs)
	}
}

func TestPlayer_FallbackOnError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlayer("missing-player", "/tmp/ding.mp3", NewBell(&buf), telemetry.Discard())
	p.start = func(name string, args ...string) error {
		return errors.New("executable file not found")
	}

	p.Notify()

	if buf.String() != "\a" {
		t.Errorf("Expected bell fallback, got %q", buf.String())
	}
}

func TestCacheName(t *testing.T) {
	a := cacheName("https://assets.example.com/sfx/select.mp3")
	b := cacheName("https://assets.example.com/sfx/other.wav")

	if !strings.HasSuffix(a, ".mp3") || !strings.HasSuffix(b, ".wav") {
		t.Errorf("Expected extensions preserved, got %s and %s", a, b)
	}
	if a == cacheName("https://assets.example.com/sfx/other.mp3") {
		t.Error("Expected different URLs to produce different names")
	}
	if cacheName("https://x.test/noext") != cacheName("https://x.test/noext") {
		t.Error("Expected stable names")
	}
}

func TestLoadAsset_DownloadsOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	fetcher := &fakeFetcher{data: []byte("ID3")}

	first, err := LoadAsset(context.Background(), fetcher, "https://x.test/ding.mp3", dir)
	if err != nil {
		t.Fatalf("LoadAsset() returned error: %v", err)
	}
	second, err := LoadAsset(context.Background(), fetcher, "https://x.test/ding.mp3", dir)
	if err != nil {
		t.Fatalf("LoadAsset() returned error: %v", err)
	}

	if first != second {
		t.Errorf("Expected same path, got %s and %s", first, second)
	}
	if fetcher.calls != 1 {
		t.Errorf("Expected exactly one download, got %d", fetcher.calls)
	}
	data, err := os.ReadFile(first)
	if err != nil || string(data) != "ID3" {
		t.Errorf("Unexpected cached content %q (%v)", data, err)
	}
}

func TestLoadAsset_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadAsset(context.Background(), &fakeFetcher{}, "", dir); err == nil {
		t.Error("Expected error for empty URL")
	}
	if _, err := LoadAsset(context.Background(), &fakeFetcher{err: errors.New("404")}, "https://x.test/a.mp3", dir); err == nil {
		t.Error("Expected error when download fails")
	}
	if _, err := LoadAsset(context.Background(), &fakeFetcher{}, "https://x.test/b.mp3", dir); err == nil {
		t.Error("Expected error for empty asset")
	}
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBell(&buf)
	dir := t.TempDir()
	logger := telemetry.Discard()

	t.Run("disabled", func(t *testing.T) {
		n := Setup(context.Background(), &fakeFetcher{}, Options{Enabled: false, Bell: bell})
		n.Notify()
		if buf.Len() != 0 {
			t.Error("Expected no sound when disabled")
		}
	})

	t.Run("bell without player", func(t *testing.T) {
		fetcher := &fakeFetcher{data: []byte("ID3")}
		n := Setup(context.Background(), fetcher, Options{Enabled: true, URL: "https://x.test/a.mp3", CacheDir: dir, Bell: bell, Logger: logger})
		if n != Notifier(bell) {
			t.Errorf("Expected bell notifier, got %T", n)
		}
		if fetcher.calls != 0 {
			t.Error("Expected no download without a player")
		}
	})

	t.Run("player", func(t *testing.T) {
		fetcher := &fakeFetcher{data: []byte("ID3")}
		n := Setup(context.Background(), fetcher, Options{Enabled: true, URL: "https://x.test/a.mp3", Player: "paplay", CacheDir: dir, Bell: bell, Logger: logger})
		if _, ok := n.(*Player); !ok {
			t.Errorf("Expected *Player, got %T", n)
		}
	})

	t.Run("download failure falls back to bell", func(t *testing.T) {
		fetcher := &fakeFetcher{err: errors.New("offline")}
		n := Setup(context.Background(), fetcher, Options{Enabled: true, URL: "https://x.test/c.mp3", Player: "paplay", CacheDir: dir, Bell: bell, Logger: logger})
		if n != Notifier(bell) {
			t.Errorf("Expected bell fallback, got %T", n)
		}
	})
}
