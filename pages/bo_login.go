package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// LoginPage is the back office login form.
type LoginPage struct {
	// URL is the back office URL.
	URL string
}

const (
	LoginPageTitle = "PrestaShop"

	loginEmailInput    = "#email"
	loginPasswordInput = "#passwd"
	loginSubmitButton  = "#submit_login"
	employeeInfos      = "#employee_infos"
	logoutLink         = "#header_logout"
	boMainDiv          = "#main-div"
)

// NewLoginPage creates the login page of the back office at url.
func NewLoginPage(url string) LoginPage {
	return LoginPage{URL: url}
}

// GoTo opens the login form.
func (p LoginPage) GoTo(page playwright.Page) error {
	return GoTo(page, p.URL)
}

// Login submits the credentials and waits for the dashboard.
func (p LoginPage) Login(page playwright.Page, email, password string) error {
	if err := FillField(page, loginEmailInput, email); err != nil {
		return err
	}
	if err := FillField(page, loginPasswordInput, password); err != nil {
		return err
	}
	if err := ClickAndWaitForLoad(page, loginSubmitButton); err != nil {
		return err
	}
	if err := page.Locator(boMainDiv).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("waiting for back office after login: %w", err)
	}
	return nil
}

// IsLoginPage reports whether the login form is shown.
func (p LoginPage) IsLoginPage(page playwright.Page) bool {
	return strings.Contains(page.URL(), "login") || ElementVisible(page, loginSubmitButton, VisibleTimeout)
}

// Logout signs the employee out.
func (p LoginPage) Logout(page playwright.Page) error {
	if err := ClickAction(page, employeeInfos); err != nil {
		return err
	}
	return ClickAndWaitForLoad(page, logoutLink)
}
