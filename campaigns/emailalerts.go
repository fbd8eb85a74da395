package campaigns

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/data"
	"github.com/networkteam/shopcheck/fileutil"
	"github.com/networkteam/shopcheck/pages"
	"github.com/networkteam/shopcheck/scenario"
)

const emailAlertsUninstallContext = "modules_ps_emailalerts_installation_uninstallAndDeleteModule"

// State keys of EmailAlertsUninstallAndDelete.
const (
	KeyIDProduct  = "idProduct"
	KeyNthProduct = "nthProduct"
)

// OutOfStockProductName is the name of the product EmailAlertsUninstallAndDelete creates.
const OutOfStockProductName = "Product Out of stock not allowed"

// EmailAlertsUninstallAndDelete uninstalls the mail alerts module and checks that the
// product page of an out of stock product no longer offers mail alerts.
func EmailAlertsUninstallAndDelete(env *Env) *scenario.Scenario {
	module := data.ModuleEmailAlerts
	product := data.NewProduct(data.ProductOptions{
		Name:                OutOfStockProductName,
		Type:                "standard",
		TaxRule:             "No tax",
		Quantity:            data.IntPtr(0),
		BehaviourOutOfStock: data.OutOfStockDeny,
	})
	ctx := emailAlertsUninstallContext

	main := scenario.New("Mail alerts module - Uninstall and delete module", ctx,
		LoginBO(env),
		goToProductsPage(),
		scenario.Step{
			Name:   "should filter list by 'product_name'",
			ID:     "filterProductName",
			Writes: []string{KeyIDProduct},
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

				id, err := pages.Products.ProductIDFromList(page, 1)
				if err != nil {
					return err
				}
				require.Positive(sc, id)
				sc.Set(KeyIDProduct, id)
				return nil
			},
		},
		goToModuleManager(),
		searchModule(module, "searchModule"),
		scenario.Step{
			Name: "should display the uninstall modal and cancel it",
			ID:   "resetModuleAndCancel",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				msg, err := pages.ModuleManager.SetActionInModule(page, module, "uninstall", true, false)
				if err != nil {
					return err
				}
				assert.Empty(sc, msg)
				assert.True(sc, pages.ModuleManager.IsModuleVisible(page, module))
				assert.False(sc, pages.ModuleManager.IsModalActionVisible(page, module, "uninstall"))
				assert.True(sc, fileutil.DoesFileExist(env.Config.ModulePath(module.Tag), fileutil.DefaultExistTimeout), "module directory is missing")
				return nil
			},
		},
		uninstallModule(env, module),
		scenario.Step{
			Name: "should go to the front office",
			ID:   "goToFo",
			Do: func(sc *scenario.Context) error {
				page, err := pages.ViewMyShop(sc)
				if err != nil {
					return err
				}
				if err := env.Home.ChangeLanguage(page, "en"); err != nil {
					return err
				}
				assert.True(sc, env.Home.IsHomePage(page), "Home page is not displayed")
				return nil
			},
		},
		scenario.Step{
			Name: "should go to the all products page",
			ID:   "goToCategoryPage",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.Home.GoToAllProductsPage(page, "featured-products"); err != nil {
					return err
				}
				assert.True(sc, env.Category.IsCategoryPage(page))
				return nil
			},
		},
		scenario.Step{
			Name:   "should go to the second page",
			ID:     "goToCategoryPage2",
			Reads:  []string{KeyIDProduct},
			Writes: []string{KeyNthProduct},
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.Category.GoToNextPage(page); err != nil {
					return err
				}

				id := scenario.MustValue[int](sc, KeyIDProduct)
				nth, err := env.Category.NthChildFromIDProduct(page, id)
				if err != nil {
					return err
				}
				require.NotZero(sc, nth, "product %d is not listed", id)
				sc.Set(KeyNthProduct, nth)
				return nil
			},
		},
		scenario.Step{
			Name:  "should go to the product page",
			ID:    "goToProductPage",
			Reads: []string{KeyNthProduct},
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.Category.GoToProductPage(page, scenario.MustValue[int](sc, KeyNthProduct)); err != nil {
					return err
				}

				title, err := env.Product.PageTitle(page)
				if err != nil {
					return err
				}
				assert.Contains(sc, strings.ToUpper(title), strings.ToUpper(product.Name))
				assert.True(sc, env.Product.HasProductFlag(page, "out_of_stock"))
				assert.False(sc, env.Product.HasBlockMailAlert(page))
				return nil
			},
		},
	)

	return main.
		Before(CreateProduct(env, product, ctx+"_preTest_0")).
		After(
			InstallModule(env, module, ctx+"_postTest_0"),
			DeleteProduct(env, product, ctx+"_postTest_1"),
		)
}
