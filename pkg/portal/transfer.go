package portal

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/playwright-community/playwright-go"
)

// transferControls abstracts the page interactions the transfer step
// performs, so the conditional-control policy is testable without a browser.
type transferControls interface {
	// IsVisible reports whether a control is currently visible. A missing
	// element is (false, nil); an error means the check itself failed.
	IsVisible(selector string) (bool, error)
	Click(selector string) error
	Fill(selector string, value string) error

	// AttachFiles opens the native file chooser via the given control and
	// supplies the whole batch in one call.
	AttachFiles(selector string, paths []string) error
}

// InitiateTransfer fills the transfer form and triggers the upload.
func (d *portalDriver) InitiateTransfer(paths []string) error {
	return initiateTransfer(&pageControls{page: d.session.Page}, d.selectors, d.cfg.RecipientEmail, paths)
}

// initiateTransfer runs the transfer-form sequence. Every control is
// conditional: portal variants differ by account type, and a control that is
// simply not present means the variant does not require that step. A failed
// visibility check is not a missing control — a dead page or a bad selector
// override must surface, not silently skip the step.
func initiateTransfer(c transferControls, sel *Selectors, recipient string, paths []string) error {
	visible, err := c.IsVisible(sel.SkipAppButton)
	if err != nil {
		return fmt.Errorf("%w: check companion app prompt: %v", ErrUploadInteraction, err)
	}
	if visible {
		if err := c.Click(sel.SkipAppButton); err != nil {
			return fmt.Errorf("%w: dismiss companion app prompt: %v", ErrUploadInteraction, err)
		}
	}

	visible, err = c.IsVisible(sel.RecipientField)
	if err != nil {
		return fmt.Errorf("%w: check recipient field: %v", ErrUploadInteraction, err)
	}
	if visible {
		if err := c.Fill(sel.RecipientField, recipient); err != nil {
			return fmt.Errorf("%w: fill recipient: %v", ErrUploadInteraction, err)
		}
	}

	visible, err = c.IsVisible(sel.AddFilesButton)
	if err != nil {
		return fmt.Errorf("%w: check add-files control: %v", ErrUploadInteraction, err)
	}
	if !visible {
		log.Debug("no add-files control on this portal variant")
		return nil
	}
	if err := c.AttachFiles(sel.AddFilesButton, paths); err != nil {
		return fmt.Errorf("%w: attach %d files: %v", ErrUploadInteraction, len(paths), err)
	}

	visible, err = c.IsVisible(sel.SendButton)
	if err != nil {
		return fmt.Errorf("%w: check send control: %v", ErrUploadInteraction, err)
	}
	if visible {
		if err := c.Click(sel.SendButton); err != nil {
			return fmt.Errorf("%w: click send: %v", ErrUploadInteraction, err)
		}
	}

	log.Debug("transfer initiated", "files", len(paths))
	return nil
}

// pageControls runs the transfer interactions against the live page.
type pageControls struct {
	page playwright.Page
}

func (c *pageControls) IsVisible(selector string) (bool, error) {
	return c.page.IsVisible(selector)
}

func (c *pageControls) Click(selector string) error {
	return c.page.Click(selector)
}

func (c *pageControls) Fill(selector string, value string) error {
	return c.page.Fill(selector, value)
}

// AttachFiles supplies the whole batch to one chooser; attaching files one
// at a time resets the portal's selection.
func (c *pageControls) AttachFiles(selector string, paths []string) error {
	chooser, err := c.page.ExpectFileChooser(func() error {
		return c.page.Click(selector)
	})
	if err != nil {
		return err
	}
	return chooser.SetFiles(paths)
}
