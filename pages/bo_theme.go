package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ThemePage is Design > Theme & Logo.
type ThemePage struct{}

var Theme ThemePage

const (
	ThemePageTitle         = "Theme & Logo"
	ThemeImportedMessage   = "The theme has been successfully imported."
	ThemeEnabledMessage    = "Your theme has been correctly enabled."
	ThemeDeletedMessage    = "Successful deletion"
	themeAddButton         = "#page-header-desc-configuration-add"
	themeImportFileInput   = "#import_theme_from_computer_import_from_computer"
	themeImportSubmit      = "#import_from_computer_submit"
	themeImportTimeout     = 2 * time.Minute
	themeDeleteModalSubmit = "#delete_theme_modal button.js-submit-delete-theme"
)

func themeCard(name string) string {
	return fmt.Sprintf(".themes-list div[data-role='theme-card-container'][data-name='%s']", name)
}

// ImportTheme uploads a theme archive and returns the success message.
func (ThemePage) ImportTheme(page playwright.Page, path string) (string, error) {
	if err := ClickAndWaitForLoad(page, themeAddButton); err != nil {
		return "", err
	}
	if err := page.Locator(themeImportFileInput).SetInputFiles(path); err != nil {
		return "", fmt.Errorf("choosing theme archive: %w", err)
	}
	if err := page.Locator(themeImportSubmit).Click(playwright.LocatorClickOptions{
		Timeout: ms(themeImportTimeout),
	}); err != nil {
		return "", fmt.Errorf("importing theme: %w", err)
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(themeImportTimeout),
	}); err != nil {
		return "", fmt.Errorf("waiting for theme import: %w", err)
	}
	return AlertSuccessText(page)
}

// IsThemeActive reports whether theme name is the active one.
func (ThemePage) IsThemeActive(page playwright.Page, name string) (bool, error) {
	n, err := CountElements(page, themeCard(name)+" .theme-card-active, .themes-list .theme-card-active[data-name='"+name+"']")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnableTheme activates theme name and returns the success message.
func (ThemePage) EnableTheme(page playwright.Page, name string) (string, error) {
	if err := ClickAndWaitForLoad(page, themeCard(name)+" button.js-display-use-theme-modal, "+themeCard(name)+" form button[type='submit']"); err != nil {
		return "", err
	}
	return AlertSuccessText(page)
}

// DeleteTheme removes the inactive theme name and returns the success message.
func (ThemePage) DeleteTheme(page playwright.Page, name string) (string, error) {
	if err := ClickAction(page, themeCard(name)+" button.js-display-delete-theme-modal"); err != nil {
		return "", err
	}
	if err := ClickAndWaitForLoad(page, themeDeleteModalSubmit); err != nil {
		return "", err
	}
	return AlertSuccessText(page)
}
