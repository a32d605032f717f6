package portal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors is the single table of every DOM selector and text pattern the
// automation touches. The portal's markup is an external, versioned contract
// that changes independently of this code, so all of it lives here and can be
// overridden from a YAML file without a rebuild.
type Selectors struct {
	// Login form (two-stage: email first, then password).
	EmailField     string `yaml:"email_field"`
	ContinueButton string `yaml:"continue_button"`
	PasswordField  string `yaml:"password_field"`
	SignInButton   string `yaml:"sign_in_button"`

	// LoginURLMarkers are substrings that, when present in the page address
	// after submitting credentials, mean the login did not succeed.
	LoginURLMarkers []string `yaml:"login_url_markers"`

	// Transfer form. Each control is optional; portal variants differ by
	// account type.
	SkipAppButton  string `yaml:"skip_app_button"`
	RecipientField string `yaml:"recipient_field"`
	AddFilesButton string `yaml:"add_files_button"`
	SendButton     string `yaml:"send_button"`

	// Transfer progress elements.
	ProgressDetail string `yaml:"progress_detail"`
	StatusText     string `yaml:"status_text"`
	ErrorIndicator string `yaml:"error_indicator"`
}

// DefaultSelectors returns the selector table matching the portal's current
// markup.
func DefaultSelectors() *Selectors {
	return &Selectors{
		EmailField:      `input[type="email"]`,
		ContinueButton:  `button:has-text("Continue")`,
		PasswordField:   `input[type="password"]`,
		SignInButton:    `button:has-text("Sign in")`,
		LoginURLMarkers: []string{"login", "signin"},
		SkipAppButton:   `button:has-text("Skip")`,
		RecipientField:  `input[name="recipients"]`,
		AddFilesButton:  `button:has-text("Add Files")`,
		SendButton:      `button:has-text("Send")`,
		ProgressDetail:  `.transfer-progress-detail`,
		StatusText:      `.transfer-status-text`,
		ErrorIndicator:  `.transfer-error, .error-message`,
	}
}

// LoadSelectors reads a YAML override file on top of the defaults. Fields
// absent from the file keep their default value.
func LoadSelectors(path string) (*Selectors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selector file: %w", err)
	}

	selectors := DefaultSelectors()
	if err := yaml.Unmarshal(data, selectors); err != nil {
		return nil, fmt.Errorf("parse selector file %s: %w", path, err)
	}

	return selectors, nil
}
