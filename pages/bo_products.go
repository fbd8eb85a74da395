package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/data"
)

// ProductsPage is the Catalog > Products list.
type ProductsPage struct{}

var Products ProductsPage

const (
	ProductsPageTitle          = "Products"
	ProductDeletedMessage      = "Successful deletion"
	ProductUpdatedMessage      = "Successful update"
	productsGridTitle          = "#product_grid_panel .card-header-title"
	productsGridTable          = "#product_grid_table"
	productsFilterReset        = "#product_grid_table button.js-reset-search"
	productsFilterSearch       = "#product_grid_table button[name='product[actions][search]']"
	productsAddButton          = "#page-header-desc-configuration-add"
	productsTypeModal          = "#create_product_modal"
	productsTypeAddButton      = "#create_product_modal .modal-footer button.btn-confirm-submit"
	productsDeleteModalConfirm = "#product-grid-confirm-modal button.btn-confirm-submit"
)

func productsRow(row int) string {
	return fmt.Sprintf("%s tbody tr:nth-child(%d)", productsGridTable, row)
}

// ResetFilter clears all list filters.
func (ProductsPage) ResetFilter(page playwright.Page) error {
	if !ElementVisible(page, productsFilterReset, VisibleTimeout) {
		return nil
	}
	return ClickAndWaitForLoad(page, productsFilterReset)
}

// ResetAndGetNumberOfLines clears the filters and returns the number of products.
func (p ProductsPage) ResetAndGetNumberOfLines(page playwright.Page) (int, error) {
	if err := p.ResetFilter(page); err != nil {
		return 0, err
	}
	return p.NumberOfProductsFromList(page)
}

// NumberOfProductsFromList returns the number of products in the list header.
func (ProductsPage) NumberOfProductsFromList(page playwright.Page) (int, error) {
	return NumberFromText(page, productsGridTitle)
}

// FilterProducts filters the list column field by value. kind is "input" or "select".
func (ProductsPage) FilterProducts(page playwright.Page, field, value, kind string) error {
	selector := fmt.Sprintf("%s #product_%s", productsGridTable, field)
	switch kind {
	case "input":
		if err := FillField(page, selector, value); err != nil {
			return err
		}
	case "select":
		if _, err := page.Locator(selector).SelectOption(playwright.SelectOptionValues{
			Labels: playwright.StringSlice(value),
		}); err != nil {
			return fmt.Errorf("selecting %s in %s: %w", value, selector, err)
		}
	default:
		return fmt.Errorf("unknown filter kind %q", kind)
	}
	return ClickAndWaitForLoad(page, productsFilterSearch)
}

// TextColumn returns the text of column in row, starting at 1.
func (ProductsPage) TextColumn(page playwright.Page, column string, row int) (string, error) {
	return TextContent(page, fmt.Sprintf("%s td.column-%s", productsRow(row), column))
}

// ProductIDFromList returns the id_product column of row as number.
func (p ProductsPage) ProductIDFromList(page playwright.Page, row int) (int, error) {
	text, err := p.TextColumn(page, "id_product", row)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parsing product id %q: %w", text, err)
	}
	return id, nil
}

// ProductStatusFromList reports whether the product in row is active.
func (ProductsPage) ProductStatusFromList(page playwright.Page, row int) (bool, error) {
	n, err := CountElements(page, productsRow(row)+" td.column-active .ps-switch input[value='1']:checked")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GoToAddProductPage opens the product form for a product of the given type.
func (ProductsPage) GoToAddProductPage(page playwright.Page, productType string) error {
	if err := ClickAction(page, productsAddButton); err != nil {
		return err
	}
	if !ElementVisible(page, productsTypeModal, VisibleTimeout) {
		return nil
	}
	if err := page.Locator(productsTypeModal).GetByText(productType).First().Click(); err != nil {
		return fmt.Errorf("choosing product type %s: %w", productType, err)
	}
	return ClickAndWaitForLoad(page, productsTypeAddButton)
}

// DeleteProduct deletes the product in row and returns the success message.
func (ProductsPage) DeleteProduct(page playwright.Page, row int) (string, error) {
	if err := ClickAction(page, productsRow(row)+" td.column-actions a.dropdown-toggle"); err != nil {
		return "", err
	}
	if err := ClickAction(page, productsRow(row)+" td.column-actions a.grid-delete-row-link"); err != nil {
		return "", err
	}
	if err := ClickAndWaitForLoad(page, productsDeleteModalConfirm); err != nil {
		return "", err
	}
	return AlertSuccessText(page)
}

// CreateProductPage is the product form.
type CreateProductPage struct{}

var CreateProduct CreateProductPage

const (
	productNameInput      = "#product_header_name_1"
	productReferenceInput = "#product_details_references_reference"
	productQuantityInput  = "#product_stock_quantities_delta_quantity_delta"
	productPriceInput     = "#product_pricing_retail_price_price_tax_excluded"
	productTaxRuleSelect  = "#product_pricing_retail_price_tax_rules_group_id"
	productStatusSwitch   = "#product_header_active_1"
	productSaveButton     = "#product_footer_save"
	productStockTab       = "#product_stock-tab-nav"
	productPricingTab     = "#product_pricing-tab-nav"
	productDetailsTab     = "#product_description-tab-nav"
	productOutOfStockBox  = "#product_stock_availability_out_of_stock_type"
)

// SetProduct fills the product form with p, saves it and returns the success message.
func (CreateProductPage) SetProduct(page playwright.Page, p data.Product) (string, error) {
	if err := FillField(page, productNameInput, p.Name); err != nil {
		return "", err
	}

	if err := ClickAction(page, productDetailsTab); err != nil {
		return "", err
	}
	if err := FillField(page, productReferenceInput, p.Reference); err != nil {
		return "", err
	}

	if err := ClickAction(page, productStockTab); err != nil {
		return "", err
	}
	if err := FillField(page, productQuantityInput, strconv.Itoa(p.Quantity)); err != nil {
		return "", err
	}
	if err := page.Locator(productOutOfStockBox).GetByLabel(p.BehaviourOutOfStock).Check(); err != nil {
		return "", fmt.Errorf("setting out of stock behaviour: %w", err)
	}

	if err := ClickAction(page, productPricingTab); err != nil {
		return "", err
	}
	if err := FillField(page, productPriceInput, strconv.FormatFloat(p.Price, 'f', 2, 64)); err != nil {
		return "", err
	}
	if _, err := page.Locator(productTaxRuleSelect).SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice(p.TaxRule),
	}); err != nil {
		return "", fmt.Errorf("selecting tax rule: %w", err)
	}

	if err := page.Locator(productStatusSwitch).SetChecked(p.Status); err != nil {
		return "", fmt.Errorf("setting status: %w", err)
	}

	if err := ClickAndWaitForLoad(page, productSaveButton); err != nil {
		return "", err
	}
	return AlertSuccessText(page)
}
