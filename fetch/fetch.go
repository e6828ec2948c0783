// Package fetch reads the text of one element from a page rendered by a real
// browser.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrBlocked is returned when every attempt found the element missing, empty
// or showing the block marker.
var ErrBlocked = errors.New("content blocked or unavailable")

// Fetcher returns the raw text found at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
)

// Config controls browser launch and the bounded reload loop.
type Config struct {
	Driver   string
	Headless bool
	// Install downloads the browser before the first run (playwright only).
	Install     bool
	Timeout     time.Duration
	Attempts    int
	ReloadDelay time.Duration
	Selector    string
	BlockMarker string
	// MouseMoves moves the pointer a little after navigation.
	MouseMoves bool
}

// DefaultConfig returns settings matching an interactive, visible browser.
func DefaultConfig() Config {
	return Config{
		Driver:      DriverPlaywright,
		Headless:    false,
		Timeout:     30 * time.Second,
		Attempts:    3,
		ReloadDelay: 2 * time.Second,
		Selector:    "pre",
		BlockMarker: "Access Restricted",
		MouseMoves:  true,
	}
}

// Validate reports settings the fetchers cannot work with.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPlaywright, DriverRod:
	default:
		return fmt.Errorf("unknown browser driver %q (want %s or %s)", c.Driver, DriverPlaywright, DriverRod)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.Selector == "" {
		return errors.New("selector must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// New returns the Fetcher for cfg.Driver.
func New(cfg Config, log *zap.Logger) (Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Driver {
	case DriverRod:
		return &Rod{cfg: cfg, log: log}, nil
	default:
		return &Playwright{cfg: cfg, log: log}, nil
	}
}

// pointer positions visited after navigation, with a pause after each
var mousePath = [][2]float64{{100, 100}, {150, 120}}

const mousePause = 500 * time.Millisecond

// page is the part of a driver's page the reload loop needs.
type page interface {
	// text returns the element's text and whether the element exists.
	text(ctx context.Context) (string, bool, error)
	reload(ctx context.Context) error
}

// poll reads the element up to cfg.Attempts times, reloading the page and
// waiting cfg.ReloadDelay between attempts. The first read that finds
// non-empty text without the block marker wins.
func poll(ctx context.Context, p page, cfg Config, log *zap.Logger) (string, error) {
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		text, found, err := p.text(ctx)
		text = strings.TrimSpace(text)
		switch {
		case err != nil:
			log.Warn("read failed", zap.Int("attempt", attempt), zap.Error(err))
		case !found:
			log.Info("element not found", zap.Int("attempt", attempt), zap.String("selector", cfg.Selector))
		case cfg.BlockMarker != "" && strings.Contains(text, cfg.BlockMarker):
			log.Info("access blocked", zap.Int("attempt", attempt))
		case text == "":
			log.Info("element empty", zap.Int("attempt", attempt))
		default:
			return text, nil
		}
		if attempt == cfg.Attempts {
			break
		}
		if err := p.reload(ctx); err != nil {
			log.Warn("reload failed", zap.Int("attempt", attempt), zap.Error(err))
		}
		if err := sleep(ctx, cfg.ReloadDelay); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%s after %d attempts: %w", cfg.Selector, cfg.Attempts, ErrBlocked)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
