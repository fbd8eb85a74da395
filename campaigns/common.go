package campaigns

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/data"
	"github.com/networkteam/shopcheck/fileutil"
	"github.com/networkteam/shopcheck/pages"
	"github.com/networkteam/shopcheck/scenario"
)

// LoginBO signs the default employee into the back office.
func LoginBO(env *Env) scenario.Step {
	return scenario.Step{
		Name: "should login in BO",
		ID:   "loginBO",
		Do: func(sc *scenario.Context) error {
			page := sc.Page()
			if err := env.Login.GoTo(page); err != nil {
				return err
			}
			if err := env.Login.Login(page, env.Employee.Email, env.Employee.Password); err != nil {
				return err
			}

			title, err := pages.PageTitle(page)
			if err != nil {
				return err
			}
			assert.Contains(sc, title, pages.DashboardPageTitle)
			return nil
		},
	}
}

func goToModuleManager() scenario.Step {
	return scenario.Step{
		Name: "should go to 'Modules > Module Manager' page",
		ID:   "goToModuleManagerPage",
		Do: func(sc *scenario.Context) error {
			page := sc.Page()
			if err := pages.Dashboard.GoToSubMenu(page, pages.ModulesParentLink, pages.ModuleManagerLink); err != nil {
				return err
			}
			if err := pages.CloseSfToolBar(page); err != nil {
				return err
			}

			title, err := pages.PageTitle(page)
			if err != nil {
				return err
			}
			assert.Contains(sc, title, pages.ModuleManagerPageTitle)
			return nil
		},
	}
}

func goToProductsPage() scenario.Step {
	return scenario.Step{
		Name: "should go to 'Catalog > Products' page",
		ID:   "goToProductsPage",
		Do: func(sc *scenario.Context) error {
			page := sc.Page()
			if err := pages.Dashboard.GoToSubMenu(page, pages.CatalogParentLink, pages.ProductsLink); err != nil {
				return err
			}
			if err := pages.CloseSfToolBar(page); err != nil {
				return err
			}

			title, err := pages.PageTitle(page)
			if err != nil {
				return err
			}
			assert.Contains(sc, title, pages.ProductsPageTitle)
			return nil
		},
	}
}

func goToThemePage() scenario.Step {
	return scenario.Step{
		Name: "should go to 'Design > Theme & Logo' page",
		ID:   "goToThemePage",
		Do: func(sc *scenario.Context) error {
			page := sc.Page()
			if err := pages.Dashboard.GoToSubMenu(page, pages.DesignParentLink, pages.ThemeAndLogoParentLink); err != nil {
				return err
			}
			if err := pages.CloseSfToolBar(page); err != nil {
				return err
			}

			title, err := pages.PageTitle(page)
			if err != nil {
				return err
			}
			assert.Contains(sc, title, pages.ThemePageTitle)
			return nil
		},
	}
}

func searchModule(module data.Module, id string) scenario.Step {
	return scenario.Step{
		Name: fmt.Sprintf("should search the module %s", module.Name),
		ID:   id,
		Do: func(sc *scenario.Context) error {
			visible, err := pages.ModuleManager.SearchModule(sc.Page(), module)
			if err != nil {
				return err
			}
			assert.True(sc, visible, "Module is not visible!")
			return nil
		},
	}
}

func downloadArchive(env *Env, id, url, name, what string) scenario.Step {
	return scenario.Step{
		Name:    fmt.Sprintf("should download the zip of %s", what),
		ID:      id,
		Timeout: downloadTimeout,
		Do: func(sc *scenario.Context) error {
			path := env.DownloadPath(name)
			if err := env.Downloader.Download(sc, url, path); err != nil {
				return err
			}
			assert.True(sc, fileutil.DoesFileExist(path, fileutil.DefaultExistTimeout))
			return nil
		},
	}
}

func uploadModule(env *Env) scenario.Step {
	return scenario.Step{
		Name:    "should upload the module",
		ID:      "uploadModule",
		Timeout: downloadTimeout,
		Do: func(sc *scenario.Context) error {
			msg, err := pages.ModuleManager.UploadModule(sc.Page(), env.DownloadPath(ModuleArchive))
			if err != nil {
				return err
			}
			assert.Equal(sc, pages.UploadModuleSuccessMessage, msg)
			return nil
		},
	}
}

func closeUploadModal() scenario.Step {
	return scenario.Step{
		Name: "should close upload module modal",
		ID:   "closeModal",
		Do: func(sc *scenario.Context) error {
			hidden, err := pages.ModuleManager.CloseUploadModuleModal(sc.Page())
			if err != nil {
				return err
			}
			assert.True(sc, hidden)
			return nil
		},
	}
}

// InstallModule downloads the release archive of module and installs it through the module manager.
func InstallModule(env *Env, module data.Module, baseContext string) *scenario.Scenario {
	return scenario.New(fmt.Sprintf("POST-CONDITION : Install the module %s", module.Name), baseContext,
		downloadArchive(env, "downloadModule", module.ReleaseZip, ModuleArchive, "the module "+module.Name),
		LoginBO(env),
		goToModuleManager(),
		uploadModule(env),
		closeUploadModal(),
		searchModule(module, "checkModulePresent"),
	).After(DeleteFile(env, ModuleArchive, baseContext+"_cleanup"))
}

// UninstallModule uninstalls module and deletes its files.
func UninstallModule(env *Env, module data.Module, baseContext string) *scenario.Scenario {
	return scenario.New(fmt.Sprintf("Uninstall the module %s", module.Name), baseContext,
		LoginBO(env),
		goToModuleManager(),
		searchModule(module, "searchModule"),
		uninstallModule(env, module),
	)
}

func uninstallModule(env *Env, module data.Module) scenario.Step {
	return scenario.Step{
		Name: "should uninstall the module",
		ID:   "resetModule",
		Do: func(sc *scenario.Context) error {
			msg, err := pages.ModuleManager.SetActionInModule(sc.Page(), module, "uninstall", false, true)
			if err != nil {
				return err
			}
			assert.Equal(sc, pages.UninstallModuleSuccessMessage(module.Tag), msg)

			// Files are removed before the success message is shown.
			assert.False(sc, fileutil.DoesFileExist(env.Config.ModulePath(module.Tag), 0), "module directory still exists")
			return nil
		},
	}
}

// CreateProduct creates product in the back office.
func CreateProduct(env *Env, product data.Product, baseContext string) *scenario.Scenario {
	return scenario.New(fmt.Sprintf("PRE-TEST: Create product '%s'", product.Name), baseContext,
		LoginBO(env),
		goToProductsPage(),
		scenario.Step{
			Name: "should create the product",
			ID:   "createProduct",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.Products.GoToAddProductPage(page, product.Type); err != nil {
					return err
				}
				msg, err := pages.CreateProduct.SetProduct(page, product)
				if err != nil {
					return err
				}
				assert.Equal(sc, pages.ProductUpdatedMessage, msg)
				return nil
			},
		},
	)
}

// DeleteProduct deletes product from the back office.
func DeleteProduct(env *Env, product data.Product, baseContext string) *scenario.Scenario {
	return scenario.New(fmt.Sprintf("POST-TEST: Delete product '%s'", product.Name), baseContext,
		LoginBO(env),
		goToProductsPage(),
		scenario.Step{
			Name: "should filter list by 'product_name'",
			ID:   "filterProductName",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.Products.FilterProducts(page, "name", product.Name, "input"); err != nil {
					return err
				}
				n, err := pages.Products.NumberOfProductsFromList(page)
				if err != nil {
					return err
				}
				require.Equal(sc, 1, n)
				return nil
			},
		},
		scenario.Step{
			Name: "should delete the product",
			ID:   "deleteProduct",
			Do: func(sc *scenario.Context) error {
				msg, err := pages.Products.DeleteProduct(sc.Page(), 1)
				if err != nil {
					return err
				}
				assert.Equal(sc, pages.ProductDeletedMessage, msg)
				return nil
			},
		},
		scenario.Step{
			Name: "should reset all filters",
			ID:   "resetFilters",
			Do: func(sc *scenario.Context) error {
				n, err := pages.Products.ResetAndGetNumberOfLines(sc.Page())
				if err != nil {
					return err
				}
				assert.Greater(sc, n, 0)
				return nil
			},
		},
	)
}

// InstallHummingbird downloads, imports and enables the hummingbird theme.
func InstallHummingbird(env *Env, baseContext string) *scenario.Scenario {
	theme := data.ThemeHummingbird
	return scenario.New("PRE-TEST: Install Hummingbird theme", baseContext,
		downloadArchive(env, "downloadTheme", theme.ReleaseZip, ThemeArchive, "the theme "+theme.Name),
		LoginBO(env),
		goToThemePage(),
		scenario.Step{
			Name:    "should import the theme",
			ID:      "importTheme",
			Timeout: downloadTimeout,
			Do: func(sc *scenario.Context) error {
				msg, err := pages.Theme.ImportTheme(sc.Page(), env.DownloadPath(ThemeArchive))
				if err != nil {
					return err
				}
				assert.Contains(sc, msg, pages.ThemeImportedMessage)
				return nil
			},
		},
		enableTheme(theme, "enableTheme"),
	).After(DeleteFile(env, ThemeArchive, baseContext+"_cleanup"))
}

// UninstallHummingbird switches back to the default theme and removes hummingbird.
func UninstallHummingbird(env *Env, baseContext string) *scenario.Scenario {
	theme := data.ThemeHummingbird
	return scenario.New("POST-TEST: Uninstall Hummingbird theme", baseContext,
		LoginBO(env),
		goToThemePage(),
		enableTheme(data.DefaultTheme, "enableDefaultTheme"),
		scenario.Step{
			Name: "should delete the theme",
			ID:   "deleteTheme",
			Do: func(sc *scenario.Context) error {
				msg, err := pages.Theme.DeleteTheme(sc.Page(), theme.Name)
				if err != nil {
					return err
				}
				assert.Contains(sc, msg, pages.ThemeDeletedMessage)
				return nil
			},
		},
	)
}

func enableTheme(theme data.Theme, id string) scenario.Step {
	return scenario.Step{
		Name: fmt.Sprintf("should enable the theme %s", theme.Name),
		ID:   id,
		Do: func(sc *scenario.Context) error {
			page := sc.Page()
			msg, err := pages.Theme.EnableTheme(page, theme.Name)
			if err != nil {
				return err
			}
			assert.Contains(sc, msg, pages.ThemeEnabledMessage)

			active, err := pages.Theme.IsThemeActive(page, theme.Name)
			if err != nil {
				return err
			}
			assert.True(sc, active, "theme %s is not active", theme.Name)
			return nil
		},
	}
}

// DeleteFile removes a downloaded file. A missing file is not an error.
func DeleteFile(env *Env, name, baseContext string) *scenario.Scenario {
	return scenario.New(fmt.Sprintf("Delete %s", name), baseContext,
		scenario.Step{
			Name: fmt.Sprintf("should delete %s", name),
			ID:   "deleteFile",
			Do: func(sc *scenario.Context) error {
				return fileutil.DeleteFile(env.DownloadPath(name))
			},
		},
	)
}
