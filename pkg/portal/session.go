package portal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/shuttle/pkg/config"
)

const (
	viewportWidth  = 1280
	viewportHeight = 720

	// The portal serves a degraded flow to unrecognized clients, so the
	// context identifies itself as a desktop Chrome.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// launchArgs disable Chromium's sandbox. Required in the constrained
// container environments this runs in, where the sandbox cannot start.
var launchArgs = []string{
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
}

// Session owns the live browser resources for a single transfer attempt:
// the Playwright driver, one browser process, one isolated context, and one
// page. A Session is never shared or reused across attempts.
type Session struct {
	pw      *playwright.Playwright
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	released bool
}

// AcquireSession launches a browser, creates an isolated context and page,
// and navigates to the portal. Every failure unwinds whatever was already
// opened and is reported as ErrSessionInit.
func AcquireSession(cfg *config.Config) (*Session, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("%w: install playwright: %v", ErrSessionInit, err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: start playwright: %v", ErrSessionInit, err)
	}

	session := &Session{pw: pw}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     launchArgs,
	})
	if err != nil {
		session.Release()
		return nil, fmt.Errorf("%w: launch browser: %v", ErrSessionInit, err)
	}
	session.Browser = browser

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewportWidth,
			Height: viewportHeight,
		},
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		session.Release()
		return nil, fmt.Errorf("%w: create context: %v", ErrSessionInit, err)
	}
	session.Context = context

	page, err := context.NewPage()
	if err != nil {
		session.Release()
		return nil, fmt.Errorf("%w: create page: %v", ErrSessionInit, err)
	}
	session.Page = page
	page.SetDefaultTimeout(cfg.Timeout)

	if _, err := page.Goto(cfg.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		session.Release()
		return nil, fmt.Errorf("%w: navigate to %s: %v", ErrSessionInit, cfg.URL, err)
	}

	log.Debug("browser session acquired", "url", cfg.URL, "headless", cfg.Headless)
	return session, nil
}

// Release closes the page, context, and browser, then stops Playwright.
// Close errors are logged and swallowed; the reported attempt outcome must
// never depend on teardown succeeding. Safe to call on a partially-populated
// session and idempotent across repeated calls.
func (s *Session) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true

	if s.Page != nil {
		if err := s.Page.Close(); err != nil {
			log.Warn("failed to close page", "err", err)
		}
		s.Page = nil
	}
	if s.Context != nil {
		if err := s.Context.Close(); err != nil {
			log.Warn("failed to close context", "err", err)
		}
		s.Context = nil
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil {
			log.Warn("failed to close browser", "err", err)
		}
		s.Browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Warn("failed to stop playwright", "err", err)
		}
		s.pw = nil
	}
}
