package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/scenario"
)

// Session is an isolated browser context with an active page.
type Session struct {
	id            uuid.UUID
	context       playwright.BrowserContext
	screenshotDir string
	release       func(uuid.UUID)

	mu     sync.Mutex
	page   playwright.Page
	closed bool
}

var (
	_ scenario.Session     = (*Session)(nil)
	_ scenario.Snapshotter = (*Session)(nil)
)

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Context returns the browser context of the session.
func (s *Session) Context() playwright.BrowserContext {
	return s.context
}

// Page returns the active page.
func (s *Session) Page() playwright.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetPage makes page the active page.
func (s *Session) SetPage(page playwright.Page) {
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

// NewTab opens another page in the session's context. The active page is not changed.
func (s *Session) NewTab() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	return page, nil
}

// WaitForTab runs action and returns the page it opened in the session's context.
func (s *Session) WaitForTab(action func() error) (playwright.Page, error) {
	page, err := s.context.ExpectPage(action)
	if err != nil {
		return nil, fmt.Errorf("waiting for tab: %w", err)
	}
	if err := page.WaitForLoadState(); err != nil {
		return nil, fmt.Errorf("waiting for tab to load: %w", err)
	}
	return page, nil
}

// CloseTab closes page and makes the page at index of the context the active page.
func (s *Session) CloseTab(page playwright.Page, index int) (playwright.Page, error) {
	next, err := closeTab(s.context, page, index)
	if err != nil {
		return nil, err
	}
	s.SetPage(next)
	return next, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Screenshot writes a full page PNG of the active page and returns its path.
func (s *Session) Screenshot(name string) (string, error) {
	page := s.Page()
	if page == nil || page.IsClosed() {
		return "", errors.New("no active page")
	}
	if err := os.MkdirAll(s.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("creating screenshot dir: %w", err)
	}

	path := filepath.Join(s.screenshotDir, unsafeFileChars.ReplaceAllString(name, "_")+".png")
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("taking screenshot: %w", err)
	}
	return path, nil
}

// HTML returns the content of the active page.
func (s *Session) HTML() (string, error) {
	page := s.Page()
	if page == nil || page.IsClosed() {
		return "", errors.New("no active page")
	}
	return page.Content()
}

// Close releases the browser context and all of its pages.
// Calling Close again does nothing.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.page = nil
	s.mu.Unlock()

	err := s.context.Close()
	if s.release != nil {
		s.release(s.id)
	}
	if err != nil {
		return fmt.Errorf("closing browser context: %w", err)
	}
	return nil
}

func closeTab(bc playwright.BrowserContext, page playwright.Page, index int) (playwright.Page, error) {
	if !page.IsClosed() {
		if err := page.Close(); err != nil {
			return nil, fmt.Errorf("closing tab: %w", err)
		}
	}
	pages := bc.Pages()
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("no tab at index %d, %d open", index, len(pages))
	}
	return pages[index], nil
}
