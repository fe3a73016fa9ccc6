// Package browser wraps a remote Chromium session reached over a CDP relay.
// The session is the one stateful external resource of an invocation: opened
// once, used for one or two sequential navigations, closed on every exit path.
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

const navigationTimeout = 20000 * time.Millisecond

// ErrConnection means the relay endpoint could not be reached. Fatal for the
// whole invocation: no partial notification is better than a wrong one.
var ErrConnection = errors.New("browser relay connection failed")

// ErrNavigation means the page did not reach its ready condition in time.
var ErrNavigation = errors.New("page navigation failed")

type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// Connect opens a remote browser session over the relay endpoint.
func Connect(wsEndpoint string) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: starting driver: %v", ErrConnection, err)
	}

	b, err := pw.Chromium.ConnectOverCDP(wsEndpoint)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	ctx, err := b.NewContext()
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("%w: creating context: %v", ErrConnection, err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("%w: creating page: %v", ErrConnection, err)
	}

	return &Session{pw: pw, browser: b, page: page}, nil
}

// Navigate loads url and waits for domcontentloaded within the fixed timeout.
func (s *Session) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(navigationTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return nil
}

// Text reads the inner text of the first element matching selector.
func (s *Session) Text(selector string) (string, error) {
	txt, err := s.page.Locator(selector).First().InnerText()
	if err != nil {
		return "", fmt.Errorf("reading text of %q: %w", selector, err)
	}
	return txt, nil
}

// Attribute reads an attribute of the first element matching selector.
// A present element without the attribute yields an empty string.
func (s *Session) Attribute(selector, name string) (string, error) {
	val, err := s.page.Locator(selector).First().GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("reading attribute %q of %q: %w", name, selector, err)
	}
	return val, nil
}

// AllTexts reads the inner texts of every element matching selector, in
// document order.
func (s *Session) AllTexts(selector string) ([]string, error) {
	texts, err := s.page.Locator(selector).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("reading texts of %q: %w", selector, err)
	}
	return texts, nil
}

// HTML reads the inner HTML of the first element matching selector.
func (s *Session) HTML(selector string) (string, error) {
	html, err := s.page.Locator(selector).First().InnerHTML()
	if err != nil {
		return "", fmt.Errorf("reading html of %q: %w", selector, err)
	}
	return html, nil
}

// WaitAttached waits up to timeout for an element matching selector to be
// attached to the DOM. Returns false, not an error, when it never attaches;
// some sections are legitimately absent.
func (s *Session) WaitAttached(selector string, timeout time.Duration) (bool, error) {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return false, nil
		}
		return false, fmt.Errorf("waiting for %q: %w", selector, err)
	}
	return true, nil
}

// Close releases the remote browser and the driver. Safe to defer alongside
// early returns; errors are logged, not propagated.
func (s *Session) Close() {
	if err := s.browser.Close(); err != nil {
		slog.Warn("Failed to close remote browser", "error", err)
	}
	if err := s.pw.Stop(); err != nil {
		slog.Warn("Failed to stop playwright driver", "error", err)
	}
}
