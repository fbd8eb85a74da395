package campaigns

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/data"
	"github.com/networkteam/shopcheck/pages"
	"github.com/networkteam/shopcheck/scenario"
)

const quickViewAddToCartContext = "functional_FO_classic_productPage_quickView_addToCart"

// QuickViewAddToCart adds the first home page product to the cart from its quick view
// and checks that a product needing customization cannot be added.
func QuickViewAddToCart(env *Env) *scenario.Scenario {
	product := data.Demo1

	return scenario.New("FO - Product page - Quick view : Add to cart", quickViewAddToCartContext,
		scenario.Step{
			Name: "should go to FO home page",
			ID:   "goToFoToCreateAccount",
			Do: func(sc *scenario.Context) error {
				if err := env.Home.GoToFO(sc.Page()); err != nil {
					return err
				}
				assert.True(sc, env.Home.IsHomePage(sc.Page()), "Fail to open FO home page")
				return nil
			},
		},
		scenario.Step{
			Name: "should add product to cart by quick view",
			ID:   "addToCartByQuickView",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.Home.QuickViewProduct(page, 1); err != nil {
					return err
				}
				if err := env.QuickView.AddToCart(page); err != nil {
					return err
				}

				title, err := pages.BlockCart.Title(page)
				if err != nil {
					return err
				}
				assert.Contains(sc, title, pages.SuccessAddToCartMessage)
				return nil
			},
		},
		scenario.Step{
			Name: "should check product details in the cart modal",
			ID:   "checkProductDetailsInCartModal",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				details, err := pages.BlockCart.ProductDetails(page)
				if err != nil {
					return err
				}
				assert.Equal(sc, data.CartProductDetails{
					Name:              product.Name,
					Price:             product.FinalPrice,
					Quantity:          1,
					CartProductsCount: 1,
					CartSubtotal:      product.FinalPrice,
					CartShipping:      "Free",
					TotalTaxIncl:      product.FinalPrice,
				}, details)

				attrs, err := pages.BlockCart.ProductAttributes(page)
				if err != nil {
					return err
				}
				assert.Equal(sc, product.Attributes, attrs)
				return nil
			},
		},
		scenario.Step{
			Name: "should proceed to checkout and go to cart page",
			ID:   "checkCartPage",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := pages.BlockCart.ProceedToCheckout(page); err != nil {
					return err
				}

				title, err := pages.Cart.PageTitle(page)
				if err != nil {
					return err
				}
				assert.Equal(sc, pages.CartPageTitle, title)
				return nil
			},
		},
		scenario.Step{
			Name: "should check product details in the cart page",
			ID:   "checkProductDetailsInCartPage",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				line, err := pages.Cart.ProductDetail(page, 1)
				if err != nil {
					return err
				}
				assert.Equal(sc, product.Name, line.Name)
				assert.Equal(sc, product.RetailPrice, line.RegularPrice)
				assert.Equal(sc, product.FinalPrice, line.Price)
				assert.Equal(sc, "-20%", line.DiscountPercentage)
				assert.Contains(sc, line.Image, product.CoverImage)
				assert.Equal(sc, 1, line.Quantity)
				assert.Equal(sc, product.FinalPrice, line.TotalPrice)

				attrs, err := pages.Cart.ProductAttributes(page, 1)
				if err != nil {
					return err
				}
				assert.Equal(sc, product.Attributes, attrs)
				return nil
			},
		},
		scenario.Step{
			Name: "should go to home page",
			ID:   "goToHomePage",
			Do: func(sc *scenario.Context) error {
				if err := env.Home.GoToHomePage(sc.Page()); err != nil {
					return err
				}
				require.True(sc, env.Home.IsHomePage(sc.Page()), "Fail to open FO home page")
				return nil
			},
		},
		scenario.Step{
			Name: "should search for a product with customization",
			ID:   "searchForProductCustomized",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.Home.SearchProduct(page, data.Demo14.Name); err != nil {
					return err
				}

				title, err := env.SearchResults.PageTitle(page)
				if err != nil {
					return err
				}
				assert.Equal(sc, pages.SearchResultsPageTitle, title)
				return nil
			},
		},
		scenario.Step{
			Name: "should check that add to cart button is disabled in quick view",
			ID:   "checkAddToCartButton",
			Do: func(sc *scenario.Context) error {
				page := sc.Page()
				if err := env.SearchResults.QuickViewProduct(page, 1); err != nil {
					return err
				}

				disabled, err := env.QuickView.IsAddToCartButtonDisabled(page)
				if err != nil {
					return err
				}
				assert.True(sc, disabled, "add to cart button is enabled")
				return nil
			},
		},
	)
}
