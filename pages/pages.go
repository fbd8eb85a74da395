// Package pages contains page objects for the back office and the front office.
//
// Page objects hold selectors only. Every method takes the playwright.Page to act on,
// so a step can hand off the active page (e.g. to a new tab) without touching them.
package pages

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/browser"
	"github.com/networkteam/shopcheck/scenario"
)

const (
	// VisibleTimeout is how long visibility checks wait before reporting false.
	VisibleTimeout = 2 * time.Second

	viewMyShopLink = "#header_shopname"
	sfToolbarClose = "a[id^='hlToolbar-']"
	alertSuccess   = "div.alert.alert-success"
	growlMessage   = "#growls .growl-message"
)

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// GoTo navigates to url and waits until the network is idle.
func GoTo(page playwright.Page, url string) error {
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// PageTitle returns the document title.
func PageTitle(page playwright.Page) (string, error) {
	title, err := page.Title()
	if err != nil {
		return "", fmt.Errorf("getting page title: %w", err)
	}
	return title, nil
}

// FillField replaces the value of the input matching selector.
func FillField(page playwright.Page, selector, value string) error {
	if err := page.Locator(selector).First().Fill(value); err != nil {
		return fmt.Errorf("filling %s: %w", selector, err)
	}
	return nil
}

// ClickAction clicks the first element matching selector.
func ClickAction(page playwright.Page, selector string) error {
	if err := page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("clicking %s: %w", selector, err)
	}
	return nil
}

// ClickAndWaitForLoad clicks selector and waits for the resulting navigation.
func ClickAndWaitForLoad(page playwright.Page, selector string) error {
	if err := ClickAction(page, selector); err != nil {
		return err
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("waiting for load after clicking %s: %w", selector, err)
	}
	return nil
}

// ElementVisible reports whether selector becomes visible within timeout.
func ElementVisible(page playwright.Page, selector string, timeout time.Duration) bool {
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
	return err == nil
}

// ElementNotVisible reports whether selector is hidden or detached within timeout.
func ElementNotVisible(page playwright.Page, selector string, timeout time.Duration) bool {
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: ms(timeout),
	})
	return err == nil
}

// TextContent returns the trimmed text of the first element matching selector.
func TextContent(page playwright.Page, selector string) (string, error) {
	text, err := page.Locator(selector).First().TextContent()
	if err != nil {
		return "", fmt.Errorf("getting text of %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// NumberFromText returns the first integer in the text of selector.
func NumberFromText(page playwright.Page, selector string) (int, error) {
	text, err := TextContent(page, selector)
	if err != nil {
		return 0, err
	}
	return ParseNumber(text)
}

// CountElements returns the number of elements matching selector.
func CountElements(page playwright.Page, selector string) (int, error) {
	n, err := page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", selector, err)
	}
	return n, nil
}

// CloseSfToolBar closes the Symfony debug toolbar if it is shown.
func CloseSfToolBar(page playwright.Page) error {
	if !ElementVisible(page, sfToolbarClose, time.Second) {
		return nil
	}
	return ClickAction(page, sfToolbarClose)
}

// ViewMyShop opens the front office from the back office header in a new tab
// and makes it the active page.
func ViewMyShop(sc *scenario.Context) (playwright.Page, error) {
	bo := sc.Page()
	fo, err := browser.ExpectTab(sc, func() error {
		return ClickAction(bo, viewMyShopLink)
	})
	if err != nil {
		return nil, fmt.Errorf("viewing my shop: %w", err)
	}
	return fo, nil
}

// ClosePage closes the active page and makes the page at index the active one.
func ClosePage(sc *scenario.Context, index int) (playwright.Page, error) {
	return browser.CloseTab(sc, index)
}

// AlertSuccessText returns the text of the success alert.
func AlertSuccessText(page playwright.Page) (string, error) {
	return TextContent(page, alertSuccess)
}

// GrowlMessage returns the text of the growl notification.
func GrowlMessage(page playwright.Page) (string, error) {
	return TextContent(page, growlMessage)
}

var (
	numberPattern = regexp.MustCompile(`-?\d+`)
	pricePattern  = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)
)

// ErrNoNumber is returned when a text contains no number.
var ErrNoNumber = errors.New("no number in text")

// ParseNumber returns the first integer in text, e.g. 19 for "There are 19 products.".
func ParseNumber(text string) (int, error) {
	m := numberPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoNumber, text)
	}
	return strconv.Atoi(m)
}

// ParsePrice returns the first decimal in text, e.g. 19.12 for "€19.12".
func ParsePrice(text string) (float64, error) {
	m := pricePattern.FindString(text)
	if m == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoNumber, text)
	}
	return strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
}

func textPrice(page playwright.Page, selector string) (float64, error) {
	text, err := TextContent(page, selector)
	if err != nil {
		return 0, err
	}
	return ParsePrice(text)
}
