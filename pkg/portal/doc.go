// Package portal drives a managed-file-transfer web portal through a
// Playwright-controlled browser. The portal exposes no API; the only
// integration path is its UI.
//
// One transfer is one attempt: acquire a browser session, sign in, attach
// the staged files, trigger the transfer, and watch the page for a terminal
// status. Each attempt owns its Session exclusively and tears it down on
// every exit path. The Orchestrator is the package boundary: it returns an
// AttemptResult and never lets a step error escape.
//
// The portal's DOM is an external contract that changes independently of
// this code. Every selector lives in the Selectors table and can be
// overridden from a YAML file.
package portal
