// Package sound provides the notification played whenever a chat message is
// rendered. Playback is fire-and-forget: failures are logged and ignored.
package sound

import (
	"io"
	"log/slog"
	"os/exec"
	"sync"
)

// Notifier is invoked once per rendered message
type Notifier interface {
	Notify()
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func()

// Notify calls f
func (f NotifierFunc) Notify() {
	f()
}

// Silent is a Notifier that does nothing
var Silent Notifier = NotifierFunc(func() {})

// Bell rings the terminal bell by writing BEL to W
type Bell struct {
	W io.Writer

	mu sync.Mutex
}

// NewBell creates a Bell writing to w
func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

// Notify writes the BEL character
func (b *Bell) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.W, "\a")
}

// startFunc launches a command without waiting for it
type startFunc func(name string, args ...string) error

// startDetached starts the command and reaps it in the background
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Player plays an audio file with an external command such as paplay or afplay
type Player struct {
	command  string
	path     string
	fallback Notifier
	logger   *slog.Logger
	start    startFunc
}

// NewPlayer creates a Player running "command path" on every Notify.
// fallback is used when the command cannot be started; it may be nil.
func NewPlayer(command, path string, fallback Notifier, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		command:  command,
		path:     path,
		fallback: fallback,
		logger:   logger,
		start:    startDetached,
	}
}

// Notify starts playback and returns immediately
func (p *Player) Notify() {
	if err := p.start(p.command, p.path); err != nil {
		p.logger.Debug("sound playback failed", "command", p.command, "error", err)
		if p.fallback != nil {
			p.fallback.Notify()
		}
	}
}
