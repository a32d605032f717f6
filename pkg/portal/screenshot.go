package portal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// screenshotDir is where failure screenshots are written.
const screenshotDir = "screenshots"

// CaptureFailure saves a full-page screenshot for post-mortem. Best-effort:
// any failure here is logged and swallowed so it can never mask the error
// that triggered the capture.
func (d *portalDriver) CaptureFailure() {
	if err := os.MkdirAll(screenshotDir, 0o755); err != nil {
		log.Warn("failed to create screenshot directory", "dir", screenshotDir, "err", err)
		return
	}

	name := fmt.Sprintf("media-shuttle-error-%d.png", time.Now().UnixMilli())
	path := filepath.Join(screenshotDir, name)

	if _, err := d.session.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Warn("failed to capture failure screenshot", "err", err)
		return
	}

	log.Info("captured failure screenshot", "path", path)
}
