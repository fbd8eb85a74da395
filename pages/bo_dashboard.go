package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Side menu links of the back office.
const (
	CatalogParentLink      = "li#subtab-AdminCatalog"
	ProductsLink           = "li#subtab-AdminProducts"
	ModulesParentLink      = "li#subtab-AdminParentModulesSf"
	ModuleManagerLink      = "li#subtab-AdminModulesSf"
	DesignParentLink       = "li#subtab-AdminParentThemes"
	ThemeAndLogoParentLink = "li#subtab-AdminThemesParent"
)

// DashboardPage is the back office landing page with the side menu.
type DashboardPage struct{}

var Dashboard DashboardPage

const DashboardPageTitle = "Dashboard"

// GoToSubMenu opens a page of the side menu, e.g. Catalog > Products.
func (DashboardPage) GoToSubMenu(page playwright.Page, parent, link string) error {
	if err := page.Locator(parent).Hover(); err != nil {
		return fmt.Errorf("opening menu %s: %w", parent, err)
	}
	if !ElementVisible(page, parent+" "+link+" a", VisibleTimeout) {
		if err := ClickAction(page, parent+" > a"); err != nil {
			return err
		}
	}
	if err := ClickAndWaitForLoad(page, parent+" "+link+" a"); err != nil {
		return fmt.Errorf("opening sub menu %s: %w", link, err)
	}
	return nil
}
