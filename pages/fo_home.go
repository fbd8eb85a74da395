package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	SuccessAddToCartMessage = "Product successfully added to your shopping cart"
	SearchResultsPageTitle  = "Search"

	homeLogo          = "#_desktop_logo a"
	searchInput       = "#search_widget input[name='s']"
	allProductsBlock  = "#content section:nth-of-type(%d) a.all-product-link"
	categoryMenuLink  = "#category-%d > a"
	languageMenuLink  = "ul.dropdown-menu a[data-iso-code='%s']"
	currentLanguage   = "button span.expand-more"
	quickViewWaitTime = 10 * time.Second
)

// HomePage is the front office home page.
type HomePage struct {
	URL   string
	Theme FOTheme
}

// NewHomePage creates the home page of the shop at url.
func NewHomePage(url string, theme FOTheme) HomePage {
	return HomePage{URL: url, Theme: theme}
}

// GoToFO opens the home page.
func (p HomePage) GoToFO(page playwright.Page) error {
	return GoTo(page, p.URL)
}

// GoToHomePage follows the header logo.
func (p HomePage) GoToHomePage(page playwright.Page) error {
	return ClickAndWaitForLoad(page, homeLogo)
}

// IsHomePage reports whether the home page is shown.
func (p HomePage) IsHomePage(page playwright.Page) bool {
	return ElementVisible(page, p.Theme.homePageBody, VisibleTimeout)
}

// QuickViewProduct opens the quick view of the nth product, starting at 1.
func (p HomePage) QuickViewProduct(page playwright.Page, n int) error {
	return quickViewProduct(page, p.Theme, n)
}

// ChangeLanguage switches the shop language by iso code if a language selector is shown.
func (p HomePage) ChangeLanguage(page playwright.Page, lang string) error {
	selector := p.Theme.languageSelector
	if !ElementVisible(page, selector, time.Second) {
		return nil
	}
	if err := ClickAction(page, selector+" "+currentLanguage); err != nil {
		return err
	}
	return ClickAndWaitForLoad(page, selector+" "+fmt.Sprintf(languageMenuLink, lang))
}

// GoToAllProductsPage follows the "All products" link. blockID selects the
// products block on themes with several blocks.
func (p HomePage) GoToAllProductsPage(page playwright.Page, blockID string) error {
	selector := p.Theme.allProductsLink
	if strings.Contains(selector, "%") {
		selector = fmt.Sprintf(selector, blockID)
	}
	return ClickAndWaitForLoad(page, selector)
}

// GoToAllProductsBlockPage follows the "All products" link of the nth products block.
func (p HomePage) GoToAllProductsBlockPage(page playwright.Page, n int) error {
	return ClickAndWaitForLoad(page, fmt.Sprintf(allProductsBlock, n))
}

// GoToCategory opens a category from the top menu.
func (p HomePage) GoToCategory(page playwright.Page, id int) error {
	return ClickAndWaitForLoad(page, fmt.Sprintf(categoryMenuLink, id))
}

// SearchProduct submits the search widget.
func (p HomePage) SearchProduct(page playwright.Page, query string) error {
	if err := FillField(page, searchInput, query); err != nil {
		return err
	}
	if err := page.Locator(searchInput).Press("Enter"); err != nil {
		return fmt.Errorf("submitting search: %w", err)
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("waiting for search results: %w", err)
	}
	return nil
}

// SearchResultsPage lists the products found by the search widget.
type SearchResultsPage struct {
	Theme FOTheme
}

// PageTitle returns the document title.
func (SearchResultsPage) PageTitle(page playwright.Page) (string, error) {
	return PageTitle(page)
}

// QuickViewProduct opens the quick view of the nth result, starting at 1.
func (p SearchResultsPage) QuickViewProduct(page playwright.Page, n int) error {
	return quickViewProduct(page, p.Theme, n)
}

func quickViewProduct(page playwright.Page, theme FOTheme, n int) error {
	product := page.Locator(theme.productMiniature).Nth(n - 1)
	if err := product.Hover(); err != nil {
		return fmt.Errorf("hovering product %d: %w", n, err)
	}
	if err := product.Locator(theme.quickViewLink).First().Click(); err != nil {
		return fmt.Errorf("opening quick view of product %d: %w", n, err)
	}
	if err := page.Locator(theme.quickViewModal).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(quickViewWaitTime),
	}); err != nil {
		return fmt.Errorf("waiting for quick view: %w", err)
	}
	return nil
}
