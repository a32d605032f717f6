package portal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// terminalMarkers are the status-text substrings that mean the portal
// considers the transfer done.
var terminalMarkers = []string{"completed", "success", "finished"}

// monitorBounds are the time limits for the two tiers of completion
// detection.
type monitorBounds struct {
	// progressWait bounds how long the progress-detail element gets to
	// appear before the monitor falls back to the error check.
	progressWait time.Duration

	// statusPoll bounds the status-text polling loop, checked every
	// pollInterval.
	statusPoll   time.Duration
	pollInterval time.Duration
}

func defaultMonitorBounds() monitorBounds {
	return monitorBounds{
		progressWait: 10 * time.Second,
		statusPoll:   300 * time.Second,
		pollInterval: time.Second,
	}
}

// statusProbe abstracts the page elements the completion monitor inspects.
type statusProbe interface {
	// WaitForProgressDetail blocks until the progress-detail element is
	// visible or the timeout elapses.
	WaitForProgressDetail(timeout time.Duration) error

	// StatusText returns the current transfer status text, empty when the
	// status element is absent.
	StatusText() (string, error)

	// ErrorText returns the text of any visible error indicator, empty when
	// none is shown.
	ErrorText() (string, error)
}

// awaitCompletion implements the two-tier completion policy. Primary tier:
// once the progress-detail element appears, poll the status text for a
// terminal marker. Fallback tier, entered only when progress detail never
// appears: inspect the error indicator, and treat the absence of an explicit
// error signal as completion. The portal gives no unconditional "done"
// signal, so the fallback deliberately favors availability over strict
// confirmation.
func awaitCompletion(probe statusProbe, bounds monitorBounds) error {
	if err := probe.WaitForProgressDetail(bounds.progressWait); err != nil {
		text, terr := probe.ErrorText()
		if terr == nil && strings.Contains(strings.ToLower(text), "error") {
			return fmt.Errorf("%w: %s", ErrTransferTimeout, strings.TrimSpace(text))
		}
		log.Warn("no progress detail and no error indicator, assuming transfer completed")
		return nil
	}

	deadline := time.Now().Add(bounds.statusPoll)
	for {
		text, err := probe.StatusText()
		if err == nil {
			lower := strings.ToLower(text)
			for _, marker := range terminalMarkers {
				if strings.Contains(lower, marker) {
					log.Debug("transfer reached terminal status", "status", strings.TrimSpace(text))
					return nil
				}
			}
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: no terminal status within %s", ErrTransferTimeout, bounds.statusPoll)
		}
		time.Sleep(bounds.pollInterval)
	}
}

// AwaitCompletion runs the completion monitor against the live page.
func (d *portalDriver) AwaitCompletion() error {
	probe := &pageProbe{page: d.session.Page, selectors: d.selectors}
	return awaitCompletion(probe, defaultMonitorBounds())
}

// pageProbe reads the progress elements from a live page.
type pageProbe struct {
	page      playwright.Page
	selectors *Selectors
}

func (p *pageProbe) WaitForProgressDetail(timeout time.Duration) error {
	_, err := p.page.WaitForSelector(p.selectors.ProgressDetail, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return err
}

func (p *pageProbe) StatusText() (string, error) {
	return p.elementText(p.selectors.StatusText)
}

func (p *pageProbe) ErrorText() (string, error) {
	return p.elementText(p.selectors.ErrorIndicator)
}

func (p *pageProbe) elementText(selector string) (string, error) {
	handle, err := p.page.QuerySelector(selector)
	if err != nil {
		return "", err
	}
	if handle == nil {
		return "", nil
	}
	return handle.TextContent()
}
