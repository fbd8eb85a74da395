package scenario

import (
	"context"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// FakeSessions is a SessionOpener without a browser, for tests of scenario
// definitions and runner behavior.
type FakeSessions struct {
	// OpenErr makes Open fail.
	OpenErr error

	mu       sync.Mutex
	sessions []*FakeSession
}

// Open returns a new FakeSession.
func (f *FakeSessions) Open(ctx context.Context) (Session, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	if err := ctx.Err(); err != nil {
		return nil, &EnvironmentError{Op: "open session", Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	s := &FakeSession{}
	f.sessions = append(f.sessions, s)
	return s, nil
}

// Sessions returns all sessions opened so far.
func (f *FakeSessions) Sessions() []*FakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeSession(nil), f.sessions...)
}

// FakeSession records page hand-offs and close calls.
type FakeSession struct {
	mu     sync.Mutex
	page   playwright.Page
	closes int
}

func (s *FakeSession) Page() playwright.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *FakeSession) SetPage(page playwright.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

// Closes returns how often Close was called.
func (s *FakeSession) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}
