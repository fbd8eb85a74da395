package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/scenario"
)

// ExpectTab runs action on the active page of sc and hands off to the tab it opened.
func ExpectTab(sc *scenario.Context, action func() error) (playwright.Page, error) {
	if s, ok := sc.Session().(*Session); ok {
		page, err := s.WaitForTab(action)
		if err != nil {
			return nil, err
		}
		sc.SetPage(page)
		return page, nil
	}

	page, err := sc.Page().Context().ExpectPage(action)
	if err != nil {
		return nil, fmt.Errorf("waiting for tab: %w", err)
	}
	sc.SetPage(page)
	return page, nil
}

// CloseTab closes the active page of sc and hands off to the page at index.
func CloseTab(sc *scenario.Context, index int) (playwright.Page, error) {
	page := sc.Page()
	next, err := closeTab(page.Context(), page, index)
	if err != nil {
		return nil, err
	}
	sc.SetPage(next)
	return next, nil
}
