package fetch

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Playwright fetches pages with a Chromium instance driven by playwright-go.
type Playwright struct {
	cfg Config
	log *zap.Logger
}

func (f *Playwright) Fetch(ctx context.Context, url string) (string, error) {
	if f.cfg.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			f.log.Warn("playwright install failed, continuing", zap.Error(err))
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return "", fmt.Errorf("start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(f.cfg.Headless),
	})
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer browser.Close()

	pg, err := browser.NewPage()
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	pg.SetDefaultTimeout(float64(f.cfg.Timeout.Milliseconds()))

	f.log.Debug("navigating", zap.String("url", url))
	if _, err := pg.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(f.cfg.Timeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}

	if f.cfg.MouseMoves {
		for _, p := range mousePath {
			if err := pg.Mouse().Move(p[0], p[1]); err != nil {
				f.log.Debug("mouse move failed", zap.Error(err))
			}
			if err := sleep(ctx, mousePause); err != nil {
				return "", err
			}
		}
	}

	return poll(ctx, &playwrightPage{page: pg, selector: f.cfg.Selector}, f.cfg, f.log)
}

type playwrightPage struct {
	page     playwright.Page
	selector string
}

func (p *playwrightPage) text(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	loc := p.page.Locator(p.selector)
	n, err := loc.Count()
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}
	s, err := loc.First().InnerText()
	if err != nil {
		return "", true, err
	}
	return s, true, nil
}

func (p *playwrightPage) reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Reload()
	return err
}
