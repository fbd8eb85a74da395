package pages

import (
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"
)

// CategoryPage is a product list of a category, including "All products".
type CategoryPage struct {
	Theme FOTheme
}

func searchFilter(kind, name string) string {
	return fmt.Sprintf("#search_filters section.facet[data-type='%s'][data-name='%s']", kind, name)
}

// IsCategoryPage reports whether a category page is shown.
func (p CategoryPage) IsCategoryPage(page playwright.Page) bool {
	return ElementVisible(page, p.Theme.categoryPageBody, VisibleTimeout)
}

// HasSearchFilters reports whether the faceted search block is shown.
func (p CategoryPage) HasSearchFilters(page playwright.Page) bool {
	return ElementVisible(page, p.Theme.searchFilters, VisibleTimeout)
}

// IsSearchFilterRadio reports whether the facet kind/name is rendered as radio buttons.
func (p CategoryPage) IsSearchFilterRadio(page playwright.Page, kind, name string) (bool, error) {
	n, err := CountElements(page, searchFilter(kind, name)+" input[type='radio']")
	return n > 0, err
}

// IsSearchFilterDropdown reports whether the facet kind/name is rendered as a drop-down list.
func (p CategoryPage) IsSearchFilterDropdown(page playwright.Page, kind, name string) (bool, error) {
	n, err := CountElements(page, searchFilter(kind, name)+" .facet-dropdown")
	return n > 0, err
}

// IsSearchFilterCheckbox reports whether the facet kind/name is rendered as checkboxes.
func (p CategoryPage) IsSearchFilterCheckbox(page playwright.Page, kind, name string) (bool, error) {
	n, err := CountElements(page, searchFilter(kind, name)+" input[type='checkbox']")
	return n > 0, err
}

// NumSearchFiltersCheckbox returns the number of checkboxes of the facet kind/name.
func (p CategoryPage) NumSearchFiltersCheckbox(page playwright.Page, kind, name string) (int, error) {
	return CountElements(page, searchFilter(kind, name)+" input[type='checkbox']")
}

// GoToNextPage follows the pagination.
func (p CategoryPage) GoToNextPage(page playwright.Page) error {
	return ClickAndWaitForLoad(page, p.Theme.nextPageLink)
}

// NthChildFromIDProduct returns the position of the product id in the list, starting at 1.
// It returns 0 if the product is not listed.
func (p CategoryPage) NthChildFromIDProduct(page playwright.Page, id int) (int, error) {
	items, err := page.Locator(p.Theme.productMiniature).All()
	if err != nil {
		return 0, fmt.Errorf("listing products: %w", err)
	}
	want := strconv.Itoa(id)
	for i, item := range items {
		got, err := item.GetAttribute("data-id-product")
		if err != nil {
			return 0, fmt.Errorf("reading product id: %w", err)
		}
		if got == want {
			return i + 1, nil
		}
	}
	return 0, nil
}

// GoToProductPage opens the nth product of the list, starting at 1.
func (p CategoryPage) GoToProductPage(page playwright.Page, n int) error {
	link := page.Locator(p.Theme.productMiniature).Nth(n - 1).Locator(p.Theme.productThumbnail).First()
	if err := link.Click(); err != nil {
		return fmt.Errorf("opening product %d: %w", n, err)
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("waiting for product page: %w", err)
	}
	return nil
}

// NumberOfProducts returns the total number of products of the category.
func (p CategoryPage) NumberOfProducts(page playwright.Page) (int, error) {
	return NumberFromText(page, p.Theme.totalProducts)
}

// NumberOfProductsDisplayed returns the number of products on the current page.
func (p CategoryPage) NumberOfProductsDisplayed(page playwright.Page) (int, error) {
	return CountElements(page, p.Theme.productMiniature)
}

// HeaderPageName returns the heading of the list.
func (p CategoryPage) HeaderPageName(page playwright.Page) (string, error) {
	return TextContent(page, p.Theme.headerName)
}

// IsSortButtonVisible reports whether the sort order selector is shown.
func (p CategoryPage) IsSortButtonVisible(page playwright.Page) bool {
	return ElementVisible(page, p.Theme.sortButton, VisibleTimeout)
}

// ShowingItems returns the pagination summary, e.g. "Showing 1-12 of 19 item(s)".
func (p CategoryPage) ShowingItems(page playwright.Page) (string, error) {
	return TextContent(page, p.Theme.showingItems)
}

// ProductPage is the front office product page.
type ProductPage struct {
	Theme FOTheme
}

// PageTitle returns the document title.
func (ProductPage) PageTitle(page playwright.Page) (string, error) {
	return PageTitle(page)
}

// HasProductFlag reports whether the flag (e.g. out_of_stock, new, discount) is shown.
func (p ProductPage) HasProductFlag(page playwright.Page, flag string) bool {
	return ElementVisible(page, fmt.Sprintf(p.Theme.productFlag, flag), VisibleTimeout)
}

// HasBlockMailAlert reports whether the mail alert block is shown.
func (p ProductPage) HasBlockMailAlert(page playwright.Page) bool {
	return ElementVisible(page, p.Theme.mailAlertBlock, VisibleTimeout)
}
