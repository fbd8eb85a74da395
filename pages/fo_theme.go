package pages

// FOTheme holds the front office selectors that differ between themes.
type FOTheme struct {
	Name string

	productMiniature   string
	quickViewLink      string
	allProductsLink    string
	totalProducts      string
	headerName         string
	sortButton         string
	showingItems       string
	nextPageLink       string
	productThumbnail   string
	languageSelector   string
	searchFilters      string
	categoryPageBody   string
	homePageBody       string
	productFlag        string
	mailAlertBlock     string
	quickViewModal     string
	quickViewAddToCart string
}

var (
	Classic = FOTheme{
		Name:               "classic",
		productMiniature:   "#content .products .js-product-miniature, #js-product-list .products .js-product-miniature",
		quickViewLink:      "a.quick-view",
		allProductsLink:    "#content a.all-product-link",
		totalProducts:      "#js-product-list-top .total-products p",
		headerName:         "#js-product-list-header h1",
		sortButton:         "#js-product-list-top .products-sort-order .select-title",
		showingItems:       "#js-product-list-bottom .pagination .showing, #js-product-list .pagination div:first-child",
		nextPageLink:       "#js-product-list nav.pagination a.next",
		productThumbnail:   "a.thumbnail",
		languageSelector:   "#_desktop_language_selector",
		searchFilters:      "#search_filters",
		categoryPageBody:   "body#category",
		homePageBody:       "body#index",
		productFlag:        "#content ul.product-flags li.product-flag.%s",
		mailAlertBlock:     "div.js-mailalert",
		quickViewModal:     ".modal.quickview",
		quickViewAddToCart: ".modal.quickview button.add-to-cart",
	}

	Hummingbird = FOTheme{
		Name:               "hummingbird",
		productMiniature:   "#content .products .js-product-miniature, #js-product-list .products .js-product-miniature",
		quickViewLink:      ".product-miniature__quickview button, a.quick-view",
		allProductsLink:    "#content #%[1]s a.all-product-link, #content #%[1]s a.products-section__link",
		totalProducts:      "#js-product-list-top .products__count, #js-product-list-top .total-products p",
		headerName:         "#js-product-list-header h1",
		sortButton:         "#js-product-list-top .products__selection .dropdown-toggle, #js-product-list-top .products-sort-order .select-title",
		showingItems:       "#js-product-list .pagination-container .showing, #js-product-list-bottom .showing",
		nextPageLink:       "#js-product-list nav.pagination a.next",
		productThumbnail:   "a.product-miniature__link, a.thumbnail",
		languageSelector:   "#_desktop_language_selector",
		searchFilters:      "#search_filters",
		categoryPageBody:   "body#category",
		homePageBody:       "body#index",
		productFlag:        "#content ul.product-flags li.product-flag.%s",
		mailAlertBlock:     "div.js-mailalert",
		quickViewModal:     ".modal.quickview",
		quickViewAddToCart: ".modal.quickview button.add-to-cart",
	}
)
