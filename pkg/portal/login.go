package portal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// Login drives the portal's two-stage sign-in form: email first, then a
// password field that only becomes visible after the first stage. Success is
// verified by the page address, not by the form submitting — the portal
// re-renders the sign-in screen on bad credentials.
func (d *portalDriver) Login() error {
	page := d.session.Page
	sel := d.selectors

	if err := page.Fill(sel.EmailField, d.cfg.Username); err != nil {
		return fmt.Errorf("%w: fill email field: %v", ErrAuthentication, err)
	}
	if err := page.Click(sel.ContinueButton); err != nil {
		return fmt.Errorf("%w: click continue: %v", ErrAuthentication, err)
	}

	if _, err := page.WaitForSelector(sel.PasswordField, playwright.PageWaitForSelectorOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("%w: password field never appeared: %v", ErrAuthentication, err)
	}
	if err := page.Fill(sel.PasswordField, d.cfg.Password); err != nil {
		return fmt.Errorf("%w: fill password field: %v", ErrAuthentication, err)
	}
	if err := page.Click(sel.SignInButton); err != nil {
		return fmt.Errorf("%w: click sign in: %v", ErrAuthentication, err)
	}

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("%w: page did not settle after sign in: %v", ErrAuthentication, err)
	}

	current := strings.ToLower(page.URL())
	for _, marker := range sel.LoginURLMarkers {
		if strings.Contains(current, marker) {
			return fmt.Errorf("%w: still on sign-in page at %s", ErrAuthentication, page.URL())
		}
	}

	log.Debug("login verified", "url", page.URL())
	return nil
}
