package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/data"
)

// QuickViewModal is the product quick view opened from a product list.
type QuickViewModal struct {
	Theme FOTheme
}

// AddToCart adds the product and waits for the block cart modal.
func (m QuickViewModal) AddToCart(page playwright.Page) error {
	if err := ClickAction(page, m.Theme.quickViewAddToCart); err != nil {
		return err
	}
	if err := page.Locator(blockCartModal).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("waiting for cart modal: %w", err)
	}
	return nil
}

// IsAddToCartButtonDisabled reports whether the product cannot be added yet.
func (m QuickViewModal) IsAddToCartButtonDisabled(page playwright.Page) (bool, error) {
	disabled, err := page.Locator(m.Theme.quickViewAddToCart).First().IsDisabled()
	if err != nil {
		return false, fmt.Errorf("checking add to cart button: %w", err)
	}
	return disabled, nil
}

const (
	blockCartModal             = "#blockcart-modal"
	blockCartTitle             = "#blockcart-modal #myModalLabel"
	blockCartProductName       = "#blockcart-modal .product-name"
	blockCartProductPrice      = "#blockcart-modal .product-price"
	blockCartProductQuantity   = "#blockcart-modal .product-quantity strong"
	blockCartProductsCount     = "#blockcart-modal .cart-products-count"
	blockCartSubtotal          = "#blockcart-modal .cart-content .subtotal.value"
	blockCartShipping          = "#blockcart-modal .cart-content .shipping.value"
	blockCartTotal             = "#blockcart-modal .cart-content .product-total .value"
	blockCartProductAttributes = "#blockcart-modal .product-attribute"
	blockCartCheckout          = "#blockcart-modal .cart-content-btn a.btn-primary"
)

// BlockCartModal is shown after a product was added to the cart.
type BlockCartModal struct{}

var BlockCart BlockCartModal

// Title returns the modal heading.
func (BlockCartModal) Title(page playwright.Page) (string, error) {
	return TextContent(page, blockCartTitle)
}

// ProductDetails returns the product and cart summary shown in the modal.
func (BlockCartModal) ProductDetails(page playwright.Page) (data.CartProductDetails, error) {
	var (
		d   data.CartProductDetails
		err error
	)
	if d.Name, err = TextContent(page, blockCartProductName); err != nil {
		return d, err
	}
	if d.Price, err = textPrice(page, blockCartProductPrice); err != nil {
		return d, err
	}
	if d.Quantity, err = NumberFromText(page, blockCartProductQuantity); err != nil {
		return d, err
	}
	if d.CartProductsCount, err = NumberFromText(page, blockCartProductsCount); err != nil {
		return d, err
	}
	if d.CartSubtotal, err = textPrice(page, blockCartSubtotal); err != nil {
		return d, err
	}
	if d.CartShipping, err = TextContent(page, blockCartShipping); err != nil {
		return d, err
	}
	if d.TotalTaxIncl, err = textPrice(page, blockCartTotal); err != nil {
		return d, err
	}
	return d, nil
}

// ProductAttributes returns the attributes of the added product.
func (BlockCartModal) ProductAttributes(page playwright.Page) ([]data.ProductAttribute, error) {
	return productAttributes(page.Locator(blockCartProductAttributes))
}

// ProceedToCheckout opens the cart page.
func (BlockCartModal) ProceedToCheckout(page playwright.Page) error {
	return ClickAndWaitForLoad(page, blockCartCheckout)
}

const (
	CartPageTitle = "Cart"

	cartProductLine = "#main .cart-items .cart-item:nth-child(%d)"
)

// CartPage is the shopping cart.
type CartPage struct{}

var Cart CartPage

// PageTitle returns the document title.
func (CartPage) PageTitle(page playwright.Page) (string, error) {
	return PageTitle(page)
}

// ProductDetail returns the cart line in row, starting at 1.
func (CartPage) ProductDetail(page playwright.Page, row int) (data.CartLine, error) {
	line := fmt.Sprintf(cartProductLine, row)

	var (
		l   data.CartLine
		err error
	)
	if l.Name, err = TextContent(page, line+" .product-line-info a.label"); err != nil {
		return l, err
	}
	if l.RegularPrice, err = textPrice(page, line+" .regular-price"); err != nil {
		return l, err
	}
	if l.Price, err = textPrice(page, line+" .current-price .price"); err != nil {
		return l, err
	}
	if l.DiscountPercentage, err = TextContent(page, line+" .discount-percentage"); err != nil {
		return l, err
	}
	if l.Image, err = page.Locator(line + " .product-image img").First().GetAttribute("src"); err != nil {
		return l, fmt.Errorf("getting product image: %w", err)
	}
	quantity, err := page.Locator(line + " input.js-cart-line-product-quantity").First().InputValue()
	if err != nil {
		return l, fmt.Errorf("getting quantity: %w", err)
	}
	if l.Quantity, err = ParseNumber(quantity); err != nil {
		return l, err
	}
	if l.TotalPrice, err = textPrice(page, line+" .product-price strong"); err != nil {
		return l, err
	}
	return l, nil
}

// ProductAttributes returns the attributes of the cart line in row.
func (CartPage) ProductAttributes(page playwright.Page, row int) ([]data.ProductAttribute, error) {
	return productAttributes(page.Locator(fmt.Sprintf(cartProductLine, row) + " .product-line-info:has(span.label):has(span.value)"))
}

func productAttributes(loc playwright.Locator) ([]data.ProductAttribute, error) {
	items, err := loc.All()
	if err != nil {
		return nil, fmt.Errorf("listing product attributes: %w", err)
	}

	attrs := make([]data.ProductAttribute, 0, len(items))
	for _, item := range items {
		text, err := item.TextContent()
		if err != nil {
			return nil, fmt.Errorf("reading product attribute: %w", err)
		}
		attr, ok := ParseAttribute(text)
		if !ok {
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// ParseAttribute parses "Size: S" into an attribute with lower case name.
func ParseAttribute(text string) (data.ProductAttribute, bool) {
	name, value, ok := strings.Cut(text, ":")
	if !ok {
		return data.ProductAttribute{}, false
	}
	return data.ProductAttribute{
		Name:  strings.ToLower(strings.TrimSpace(name)),
		Value: strings.TrimSpace(value),
	}, true
}
