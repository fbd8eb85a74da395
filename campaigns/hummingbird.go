package campaigns

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/pages"
	"github.com/networkteam/shopcheck/scenario"
)

const hummingbirdAllProductsContext = "functional_FO_hummingbird_homePage_allProducts"

// State keys of HummingbirdAllProducts.
const (
	KeyNumberOfProducts       = "numberOfProducts"
	KeyNumberOfActiveProducts = "numberOfActiveProducts"
)

// HummingbirdAllProducts checks that the all products page of the hummingbird theme
// lists every active product.
func HummingbirdAllProducts(env *Env) *scenario.Scenario {
	home := env.HummingbirdHome
	category := env.HummingbirdCategory
	ctx := hummingbirdAllProductsContext

	main := scenario.New("FO - Home Page : Display all products", ctx,
		LoginBO(env),
		goToProductsPage(),
		scenario.Step{
			Name:   "should reset all filters and get number of products",
			ID:     "resetFilter",
			Writes: []string{KeyNumberOfProducts},
			Do: func(sc *scenario.Context) error {
				n, err := pages.Products.ResetAndGetNumberOfLines(sc.Page())
				if err != nil {
					return err
				}
				require.Positive(sc, n)
				sc.Set(KeyNumberOfProducts, n)
				return nil
			},
		},
		scenario.Step{
			Name:   "should filter list by status",
			ID:     "filterByStatus",
			Reads:  []string{KeyNumberOfProducts},
			Writes: []string{KeyNumberOfActiveProducts},
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.Products.FilterProducts(page, "active", "Yes", "select"); err != nil {
					return err
				}

				active, err := pages.Products.NumberOfProductsFromList(page)
				if err != nil {
					return err
				}
				total := scenario.MustValue[int](sc, KeyNumberOfProducts)
				require.GreaterOrEqual(sc, active, 0)
				require.LessOrEqual(sc, active, total)
				sc.Set(KeyNumberOfActiveProducts, active)

				for row := 1; row <= active; row++ {
					status, err := pages.Products.ProductStatusFromList(page, row)
					if err != nil {
						return err
					}
					assert.True(sc, status, "product in row %d is not active", row)
				}
				return nil
			},
		},
		scenario.Step{
			Name: "should go to the shop front office",
			ID:   "goToShopFO",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := home.GoToFO(page); err != nil {
					return err
				}
				assert.True(sc, home.IsHomePage(page), "Home page is not displayed")
				return nil
			},
		},
		scenario.Step{
			Name: "should go to the all products page",
			ID:   "goToAllProducts",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := home.ChangeLanguage(page, "en"); err != nil {
					return err
				}
				if err := home.GoToAllProductsPage(page, "featured-products"); err != nil {
					return err
				}
				assert.True(sc, category.IsCategoryPage(page), "category page is not displayed")
				return nil
			},
		},
		scenario.Step{
			Name:  "should check the number of products",
			ID:    "numberOfProducts",
			Reads: []string{KeyNumberOfActiveProducts},
			Do: func(sc *scenario.Context) error {
				n, err := category.NumberOfProducts(sc.Page())
				if err != nil {
					return err
				}
				assert.Equal(sc, scenario.MustValue[int](sc, KeyNumberOfActiveProducts), n)
				return nil
			},
		},
		scenario.Step{
			Name: "should check the header name",
			ID:   "nameOfHeader",
			Do: func(sc *scenario.Context) error {
				header, err := category.HeaderPageName(sc.Page())
				if err != nil {
					return err
				}
				assert.Equal(sc, "Home", header)
				return nil
			},
		},
		scenario.Step{
			Name: "should check that the sort link is visible",
			ID:   "homeSortAndPaginationLink",
			Do: func(sc *scenario.Context) error {
				assert.True(sc, category.IsSortButtonVisible(sc.Page()), "sort button is not visible")
				return nil
			},
		},
		scenario.Step{
			Name:  "should check the showing items text",
			ID:    "showingItemTextDisplayed",
			Reads: []string{KeyNumberOfActiveProducts},
			Do: func(sc *scenario.Context) error {
				text, err := category.ShowingItems(sc.Page())
				if err != nil {
					return err
				}
				n := scenario.MustValue[int](sc, KeyNumberOfActiveProducts)
				assert.Equal(sc, fmt.Sprintf("Showing 1-12 of %d item(s)", n), text)
				return nil
			},
		},
		scenario.Step{
			Name: "should check that the list of products is displayed",
			ID:   "displayedListOfProduct",
			Do: func(sc *scenario.Context) error {
				n, err := category.NumberOfProductsDisplayed(sc.Page())
				if err != nil {
					return err
				}
				assert.Positive(sc, n)
				return nil
			},
		},
	)

	return scenario.WithFixture(
		InstallHummingbird(env, ctx+"_preTest"),
		UninstallHummingbird(env, ctx+"_postTest"),
		main,
	)
}
