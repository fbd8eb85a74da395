package browser_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/browser"
	"github.com/networkteam/shopcheck/scenario"
)

type fakePage struct {
	playwright.Page
	name    string
	content string

	mu     sync.Mutex
	closed bool
}

func (p *fakePage) Close(...playwright.PageCloseOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePage) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePage) Content() (string, error) {
	return p.content, nil
}

func (p *fakePage) WaitForLoadState(...playwright.PageWaitForLoadStateOptions) error {
	return nil
}

func (p *fakePage) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	data := []byte("png:" + p.name)
	if len(options) > 0 && options[0].Path != nil {
		if err := os.WriteFile(*options[0].Path, data, 0o644); err != nil {
			return nil, err
		}
	}
	return data, nil
}

type fakeContext struct {
	playwright.BrowserContext

	mu             sync.Mutex
	pages          []*fakePage
	closes         int
	defaultTimeout float64
	newPageErr     error
	// opened is returned by ExpectPage after running the callback.
	opened *fakePage
}

func (c *fakeContext) NewPage() (playwright.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.newPageErr != nil {
		return nil, c.newPageErr
	}
	p := &fakePage{name: "page", content: "<html><body>shop</body></html>"}
	c.pages = append(c.pages, p)
	return p, nil
}

func (c *fakeContext) Pages() []playwright.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	var open []playwright.Page
	for _, p := range c.pages {
		if !p.IsClosed() {
			open = append(open, p)
		}
	}
	return open
}

func (c *fakeContext) ExpectPage(cb func() error, _ ...playwright.BrowserContextExpectPageOptions) (playwright.Page, error) {
	if err := cb(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = append(c.pages, c.opened)
	return c.opened, nil
}

func (c *fakeContext) SetDefaultTimeout(timeout float64) {
	c.defaultTimeout = timeout
}

func (c *fakeContext) Close(...playwright.BrowserContextCloseOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	for _, p := range c.pages {
		_ = p.Close()
	}
	return nil
}

type fakeBrowser struct {
	mu       sync.Mutex
	contexts []*fakeContext
	options  []playwright.BrowserNewContextOptions
	err      error
	pageErr  error
}

func (b *fakeBrowser) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	c := &fakeContext{newPageErr: b.pageErr}
	b.contexts = append(b.contexts, c)
	b.options = append(b.options, options...)
	return c, nil
}

func TestSessionManager_Open(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b, browser.WithLocale("en-GB"), browser.WithViewport(1280, 720))

	s, err := sm.Open(context.Background())
	require.NoError(t, err)

	require.Len(t, b.contexts, 1)
	assert.NotNil(t, s.Page())
	assert.Equal(t, 1, sm.Len())
	assert.Equal(t, float64(browser.DefaultTimeout.Milliseconds()), b.contexts[0].defaultTimeout)

	opts := b.options[0]
	assert.Equal(t, "en-GB", *opts.Locale)
	assert.Equal(t, 1280, opts.Viewport.Width)
	assert.True(t, *opts.AcceptDownloads)

	bs := s.(*browser.Session)
	assert.Same(t, bs, sm.Get(bs.ID()))
}

func TestSessionManager_Open_IsolatesSessions(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)

	s1, err := sm.Open(context.Background())
	require.NoError(t, err)
	s2, err := sm.Open(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, s1.(*browser.Session).Context(), s2.(*browser.Session).Context())
	assert.NotEqual(t, s1.(*browser.Session).ID(), s2.(*browser.Session).ID())
}

func TestSessionManager_Open_ContextError(t *testing.T) {
	sm := browser.NewSessionManager(&fakeBrowser{err: errors.New("browser crashed")})

	_, err := sm.Open(context.Background())

	var envErr *scenario.EnvironmentError
	require.ErrorAs(t, err, &envErr)
	assert.Contains(t, err.Error(), "browser crashed")
	assert.Equal(t, 0, sm.Len())
}

func TestSessionManager_Open_PageErrorClosesContext(t *testing.T) {
	b := &fakeBrowser{pageErr: errors.New("out of memory")}
	sm := browser.NewSessionManager(b)

	_, err := sm.Open(context.Background())

	var envErr *scenario.EnvironmentError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, "creating page", envErr.Op)
	assert.Equal(t, 1, b.contexts[0].closes)
}

func TestSessionManager_Open_MaxSessions(t *testing.T) {
	sm := browser.NewSessionManager(&fakeBrowser{}, browser.WithMaxSessions(1))

	s, err := sm.Open(context.Background())
	require.NoError(t, err)

	_, err = sm.Open(context.Background())
	assert.ErrorIs(t, err, browser.ErrTooManySessions)

	require.NoError(t, s.Close())
	_, err = sm.Open(context.Background())
	assert.NoError(t, err)
}

func TestSessionManager_Open_CancelledContext(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sm.Open(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.contexts)
}

func TestSessionManager_Close(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)

	s1, err := sm.Open(context.Background())
	require.NoError(t, err)
	_, err = sm.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	require.NoError(t, sm.Close())

	assert.Equal(t, 0, sm.Len())
	for _, c := range b.contexts {
		assert.Equal(t, 1, c.closes)
	}

	_, err = sm.Open(context.Background())
	assert.ErrorIs(t, err, browser.ErrManagerClosed)
}

func TestSession_Close_Idempotent(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)
	s, err := sm.Open(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.Equal(t, 1, b.contexts[0].closes)
	assert.Nil(t, s.Page())
}

func TestSession_Close_AfterPagesClosed(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)
	s, err := sm.Open(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Page().Close())

	assert.NoError(t, s.Close())
}

func TestSession_WaitForTab_CloseTab(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)
	s, err := sm.Open(context.Background())
	require.NoError(t, err)
	bs := s.(*browser.Session)

	original := bs.Page()
	fo := &fakePage{name: "fo"}
	b.contexts[0].opened = fo

	clicked := false
	tab, err := bs.WaitForTab(func() error {
		clicked = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, clicked)
	assert.Same(t, fo, tab)

	bs.SetPage(tab)
	back, err := bs.CloseTab(tab, 0)
	require.NoError(t, err)

	assert.True(t, fo.IsClosed())
	assert.Same(t, original, back)
	assert.Same(t, original, bs.Page())
}

func TestSession_CloseTab_InvalidIndex(t *testing.T) {
	sm := browser.NewSessionManager(&fakeBrowser{})
	s, err := sm.Open(context.Background())
	require.NoError(t, err)
	bs := s.(*browser.Session)

	_, err = bs.CloseTab(bs.Page(), 0)
	assert.ErrorContains(t, err, "no tab at index 0")
}

func TestSession_Screenshot(t *testing.T) {
	dir := t.TempDir()
	sm := browser.NewSessionManager(&fakeBrowser{}, browser.WithScreenshotDir(dir))
	s, err := sm.Open(context.Background())
	require.NoError(t, err)
	bs := s.(*browser.Session)

	path, err := bs.Screenshot("functional_FO/quickView addToCart")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "functional_FO_quickView_addToCart.png"), path)
	assert.FileExists(t, path)

	html, err := bs.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "shop")
}

func TestSession_RunnerClosesSessionOnce(t *testing.T) {
	b := &fakeBrowser{}
	sm := browser.NewSessionManager(b)
	runner := scenario.NewRunner(scenario.RunnerOptions{Sessions: sm})

	result := runner.Run(context.Background(), scenario.New("fail", "",
		scenario.Step{Name: "boom", Do: func(sc *scenario.Context) error {
			return errors.New("boom")
		}},
	))

	assert.False(t, result.Passed())
	require.Len(t, b.contexts, 1)
	assert.Equal(t, 1, b.contexts[0].closes)
	assert.Equal(t, 0, sm.Len())
}
