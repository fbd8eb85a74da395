package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/data"
)

// ModuleManagerPage is Modules > Module Manager.
type ModuleManagerPage struct{}

var ModuleManager ModuleManagerPage

const (
	ModuleManagerPageTitle      = "Module manager"
	UploadModuleSuccessMessage  = "Module installed!"
	moduleSearchInput           = "#search-input-group input.pstaggerAddTagInput"
	moduleSearchButton          = "#module-search-button"
	moduleUploadButton          = "#page-header-desc-configuration-add_module"
	moduleUploadInput           = "#importDropzone input.dz-hidden-input"
	moduleUploadSuccess         = "#importDropzone .module-import-success-msg"
	moduleUploadModal           = "#module-modal-import"
	moduleUploadModalCloseCross = "#module-modal-import-closing-cross"
	moduleForceDeletion         = "#force_deletion"
	moduleUploadTimeout         = 60 * time.Second
)

func moduleBlock(m data.Module) string {
	return fmt.Sprintf("#modules-list-container-all div[data-tech-name='%s']", m.Tag)
}

func moduleActionModal(m data.Module, action string) string {
	return fmt.Sprintf("#module-modal-confirm-%s-%s", m.Tag, action)
}

// UninstallModuleSuccessMessage is shown after a module was uninstalled.
func UninstallModuleSuccessMessage(tag string) string {
	return fmt.Sprintf("Uninstall action on module %s succeeded.", tag)
}

// InstallModuleSuccessMessage is shown after a module was installed.
func InstallModuleSuccessMessage(tag string) string {
	return fmt.Sprintf("Install action on module %s succeeded.", tag)
}

// SearchModule searches the module list and reports whether m is listed.
func (p ModuleManagerPage) SearchModule(page playwright.Page, m data.Module) (bool, error) {
	if err := FillField(page, moduleSearchInput, m.Tag); err != nil {
		return false, err
	}
	if err := ClickAndWaitForLoad(page, moduleSearchButton); err != nil {
		return false, err
	}
	return p.IsModuleVisible(page, m), nil
}

// IsModuleVisible reports whether m is listed.
func (ModuleManagerPage) IsModuleVisible(page playwright.Page, m data.Module) bool {
	return ElementVisible(page, moduleBlock(m), VisibleTimeout)
}

// IsModalActionVisible reports whether the confirmation modal of action is shown.
func (ModuleManagerPage) IsModalActionVisible(page playwright.Page, m data.Module, action string) bool {
	return ElementVisible(page, moduleActionModal(m, action), VisibleTimeout)
}

// SetActionInModule runs action (install, uninstall, enable, disable, reset) on m.
// With cancel the confirmation modal is dismissed and an empty message is returned.
// With force the module files are deleted on uninstall.
func (ModuleManagerPage) SetActionInModule(page playwright.Page, m data.Module, action string, cancel, force bool) (string, error) {
	block := moduleBlock(m)
	actionButton := fmt.Sprintf("%s button.module_action_menu_%s", block, action)

	if !ElementVisible(page, actionButton, VisibleTimeout) {
		if err := ClickAction(page, block+" button.dropdown-toggle"); err != nil {
			return "", err
		}
	}
	if err := ClickAction(page, actionButton); err != nil {
		return "", err
	}

	modal := moduleActionModal(m, action)
	if !ElementVisible(page, modal, VisibleTimeout) {
		return GrowlMessage(page)
	}

	if cancel {
		if err := ClickAction(page, modal+" input[type='button'].btn-outline-secondary"); err != nil {
			return "", err
		}
		if !ElementNotVisible(page, modal, VisibleTimeout) {
			return "", fmt.Errorf("modal %s still visible after cancel", modal)
		}
		return "", nil
	}

	if force {
		if err := page.Locator(modal + " " + moduleForceDeletion).SetChecked(true); err != nil {
			return "", fmt.Errorf("checking force deletion: %w", err)
		}
	}
	if err := ClickAction(page, fmt.Sprintf("%s a.module_action_modal_%s", modal, action)); err != nil {
		return "", err
	}
	return GrowlMessage(page)
}

// UploadModule uploads a module archive and returns the success message.
func (ModuleManagerPage) UploadModule(page playwright.Page, path string) (string, error) {
	if err := ClickAction(page, moduleUploadButton); err != nil {
		return "", err
	}
	if err := page.Locator(moduleUploadInput).SetInputFiles(path); err != nil {
		return "", fmt.Errorf("uploading %s: %w", path, err)
	}
	if err := page.Locator(moduleUploadSuccess).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(moduleUploadTimeout),
	}); err != nil {
		return "", fmt.Errorf("waiting for upload: %w", err)
	}
	return TextContent(page, moduleUploadSuccess)
}

// CloseUploadModuleModal closes the upload modal and reports whether it is hidden.
func (ModuleManagerPage) CloseUploadModuleModal(page playwright.Page) (bool, error) {
	if err := ClickAction(page, moduleUploadModalCloseCross); err != nil {
		return false, err
	}
	return ElementNotVisible(page, moduleUploadModal, VisibleTimeout), nil
}

// GoToConfigurationPage opens the configuration page of the module tag.
func (ModuleManagerPage) GoToConfigurationPage(page playwright.Page, tag string) error {
	return ClickAndWaitForLoad(page, fmt.Sprintf("#modules-list-container-all div[data-tech-name='%s'] a.module_action_menu_configure", tag))
}
