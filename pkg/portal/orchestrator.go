package portal

import (
	"errors"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/entrhq/shuttle/pkg/config"
)

// AttemptResult is the outcome of one end-to-end transfer attempt for a
// batch of staged files. Immutable once built.
type AttemptResult struct {
	Success       bool
	UploadedFiles []string
	Error         string
}

// Orchestrator composes session acquisition, login, transfer initiation, and
// completion monitoring into one attempt, converting every failure into a
// uniform AttemptResult. No error propagates past this boundary.
type Orchestrator struct {
	cfg       *config.Config
	selectors *Selectors

	// newDriver acquires the browser session for one attempt. Swapped out
	// in tests.
	newDriver func() (sessionDriver, error)
}

// NewOrchestrator creates an orchestrator for the given configuration. A nil
// selectors argument uses the defaults.
func NewOrchestrator(cfg *config.Config, selectors *Selectors) *Orchestrator {
	if selectors == nil {
		selectors = DefaultSelectors()
	}
	o := &Orchestrator{cfg: cfg, selectors: selectors}
	o.newDriver = o.acquireDriver
	return o
}

func (o *Orchestrator) acquireDriver() (sessionDriver, error) {
	session, err := AcquireSession(o.cfg)
	if err != nil {
		return nil, err
	}
	return &portalDriver{session: session, cfg: o.cfg, selectors: o.selectors}, nil
}

// Run performs a transfer, retrying failed attempts up to cfg.MaxRetries.
// Only session-init and transfer-timeout failures are retried: a rejected
// login or a broken interaction will fail the same way every time, and
// retrying credentials risks an account lockout.
func (o *Orchestrator) Run(paths []string) AttemptResult {
	attempts := o.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var result AttemptResult
	for i := 1; i <= attempts; i++ {
		var kind error
		result, kind = o.runAttempt(paths)
		if result.Success || !retryable(kind) {
			return result
		}
		if i < attempts {
			log.Warn("transfer attempt failed, retrying", "attempt", i, "of", attempts, "error", result.Error)
		}
	}
	return result
}

// RunAttempt performs exactly one attempt with no retries.
func (o *Orchestrator) RunAttempt(paths []string) AttemptResult {
	result, _ := o.runAttempt(paths)
	return result
}

func retryable(err error) bool {
	return errors.Is(err, ErrSessionInit) || errors.Is(err, ErrTransferTimeout)
}

// runAttempt is one acquisition-to-teardown pass. Session release is
// registered the moment acquisition succeeds and runs on every exit path,
// exactly once.
func (o *Orchestrator) runAttempt(paths []string) (AttemptResult, error) {
	driver, err := o.newDriver()
	if err != nil {
		log.Error("session acquisition failed", "err", err)
		return failedResult(err), err
	}
	defer driver.Release()

	if err := runSteps(driver, paths); err != nil {
		log.Error("transfer attempt failed", "err", err)
		if o.cfg.ScreenshotOnError {
			driver.CaptureFailure()
		}
		return failedResult(err), err
	}

	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	log.Info("transfer completed", "files", len(names))
	return AttemptResult{Success: true, UploadedFiles: names}, nil
}

// runSteps executes the attempt's steps in strict sequence; a failure at any
// step short-circuits the rest.
func runSteps(d sessionDriver, paths []string) error {
	if err := d.Login(); err != nil {
		return err
	}
	if err := d.InitiateTransfer(paths); err != nil {
		return err
	}
	return d.AwaitCompletion()
}

func failedResult(err error) AttemptResult {
	return AttemptResult{Success: false, Error: err.Error()}
}
