package fetch

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Rod fetches pages with a Chromium instance driven over CDP by go-rod.
type Rod struct {
	cfg Config
	log *zap.Logger
}

func (f *Rod) Fetch(ctx context.Context, url string) (string, error) {
	l := launcher.New().Headless(f.cfg.Headless)
	defer l.Cleanup()
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	f.log.Debug("navigating", zap.String("url", url))
	pg, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	nav := pg.Timeout(f.cfg.Timeout)
	if err := nav.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for %s: %w", url, err)
	}

	if f.cfg.MouseMoves {
		for _, p := range mousePath {
			if err := pg.Mouse.MoveTo(proto.NewPoint(p[0], p[1])); err != nil {
				f.log.Debug("mouse move failed", zap.Error(err))
			}
			if err := sleep(ctx, mousePause); err != nil {
				return "", err
			}
		}
	}

	return poll(ctx, &rodPage{page: pg, cfg: f.cfg}, f.cfg, f.log)
}

type rodPage struct {
	page *rod.Page
	cfg  Config
}

func (p *rodPage) text(ctx context.Context) (string, bool, error) {
	pg := p.page.Context(ctx).Timeout(p.cfg.Timeout)
	has, el, err := pg.Has(p.cfg.Selector)
	if err != nil || !has {
		return "", false, err
	}
	s, err := el.Text()
	if err != nil {
		return "", true, err
	}
	return s, true, nil
}

func (p *rodPage) reload(ctx context.Context) error {
	pg := p.page.Context(ctx).Timeout(p.cfg.Timeout)
	if err := pg.Reload(); err != nil {
		return err
	}
	return pg.WaitLoad()
}
