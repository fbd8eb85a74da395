// Package data holds the fixture records used by the campaigns.
package data

import (
	"strings"

	"github.com/gofrs/uuid"

	"github.com/networkteam/shopcheck/internal/config"
)

// ProductAttribute is a name/value pair shown for a cart line, e.g. size S.
type ProductAttribute struct {
	Name  string
	Value string
}

// CartProductDetails is what the block cart modal shows after adding a product.
type CartProductDetails struct {
	Name              string
	Price             float64
	Quantity          int
	CartProductsCount int
	CartSubtotal      float64
	CartShipping      string
	TotalTaxIncl      float64
}

// CartLine is a product row of the cart page.
type CartLine struct {
	Name               string
	RegularPrice       float64
	Price              float64
	DiscountPercentage string
	Image              string
	Quantity           int
	TotalPrice         float64
}

// DemoProduct is a product of the demo catalog.
type DemoProduct struct {
	ID          int
	Name        string
	Reference   string
	RetailPrice float64
	FinalPrice  float64
	// Discount is the specific price reduction in percent.
	Discount   int
	CoverImage string
	Attributes []ProductAttribute
}

var (
	// Demo1 is the first product of the home page.
	Demo1 = DemoProduct{
		ID:          1,
		Name:        "Hummingbird printed t-shirt",
		Reference:   "demo_1",
		RetailPrice: 23.90,
		FinalPrice:  19.12,
		Discount:    20,
		CoverImage:  "hummingbird-printed-t-shirt",
		Attributes: []ProductAttribute{
			{Name: "size", Value: "S"},
			{Name: "color", Value: "White"},
		},
	}

	// Demo14 requires a customization before it can be added to the cart.
	Demo14 = DemoProduct{
		ID:          19,
		Name:        "Customizable mug",
		Reference:   "demo_14",
		RetailPrice: 13.90,
		FinalPrice:  13.90,
		CoverImage:  "customizable-mug",
	}
)

// Module is a shop module with its release archive.
type Module struct {
	Tag        string
	Name       string
	ReleaseZip string
}

var (
	ModuleEmailAlerts = Module{
		Tag:        "ps_emailalerts",
		Name:       "Mail alerts",
		ReleaseZip: "https://github.com/PrestaShop/ps_emailalerts/releases/download/v3.0.0/ps_emailalerts.zip",
	}
	ModuleFacetedSearch = Module{
		Tag:        "ps_facetedsearch",
		Name:       "Faceted search",
		ReleaseZip: "https://github.com/PrestaShop/ps_facetedsearch/releases/download/v3.16.1/ps_facetedsearch.zip",
	}
)

// Theme is a shop theme with its release archive.
type Theme struct {
	Name       string
	ReleaseZip string
}

var ThemeHummingbird = Theme{
	Name:       "hummingbird",
	ReleaseZip: "https://github.com/PrestaShop/hummingbird/releases/download/v1.0.0/hummingbird.zip",
}

// DefaultTheme is active when no other theme was enabled.
var DefaultTheme = Theme{Name: "classic"}

// Category is a catalog category.
type Category struct {
	ID   int
	Name string
}

var CategoryClothes = Category{ID: 3, Name: "Clothes"}

// Employee is a back office account.
type Employee struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// DefaultEmployee returns the back office account from the configuration.
func DefaultEmployee(cfg *config.Config) Employee {
	return Employee{
		FirstName: "Marc",
		LastName:  "Beier",
		Email:     cfg.BO.Email,
		Password:  cfg.BO.Password,
	}
}

// Out of stock behaviours of a product.
const (
	OutOfStockDeny    = "Deny orders"
	OutOfStockAllow   = "Allow orders"
	OutOfStockDefault = "Use default behavior"
)

// Product is a product created through the back office product form.
type Product struct {
	Name                string
	Reference           string
	Type                string
	TaxRule             string
	Tax                 float64
	Quantity            int
	Price               float64
	BehaviourOutOfStock string
	Status              bool
}

// ProductOptions are the fields of a generated product. Zero values are filled with defaults.
type ProductOptions struct {
	Name                string
	Type                string
	TaxRule             string
	Tax                 float64
	Quantity            *int
	Price               float64
	BehaviourOutOfStock string
}

// NewProduct generates a product with a unique reference.
func NewProduct(opts ProductOptions) Product {
	ref := strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")[:12]

	p := Product{
		Name:                opts.Name,
		Reference:           ref,
		Type:                opts.Type,
		TaxRule:             opts.TaxRule,
		Tax:                 opts.Tax,
		Quantity:            100,
		Price:               opts.Price,
		BehaviourOutOfStock: opts.BehaviourOutOfStock,
		Status:              true,
	}
	if p.Name == "" {
		p.Name = "Product " + ref
	}
	if p.Type == "" {
		p.Type = "standard"
	}
	if p.TaxRule == "" {
		p.TaxRule = "No tax"
	}
	if opts.Quantity != nil {
		p.Quantity = *opts.Quantity
	}
	if p.Price == 0 {
		p.Price = 10
	}
	if p.BehaviourOutOfStock == "" {
		p.BehaviourOutOfStock = OutOfStockDefault
	}
	return p
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
