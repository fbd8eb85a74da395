//go:build acceptance
// +build acceptance

package acceptance

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/networkteam/shopcheck/data"
)

// Storefront is an in-process shop serving the markup of the classic theme for
// the home page, quick view, cart and search, plus a minimal back office header.
type Storefront struct {
	Server *httptest.Server
	// FOURL is the home page URL.
	FOURL string
	// BOURL is the back office dashboard URL.
	BOURL string
}

type storeProduct struct {
	data.DemoProduct
	Customizable bool
}

var storeProducts = []storeProduct{
	{DemoProduct: data.Demo1},
	{DemoProduct: data.Demo14, Customizable: true},
}

// NewStorefront starts the storefront.
func NewStorefront(t *testing.T) *Storefront {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", serveHome)
	mux.HandleFunc("GET /search", serveSearch)
	mux.HandleFunc("GET /cart", serveCart)
	mux.HandleFunc("GET /admin-dev/{$}", serveDashboard)
	mux.HandleFunc("GET /img/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprint(w, `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`)
	})

	server := httptest.NewServer(mux)

	return &Storefront{
		Server: server,
		FOURL:  server.URL + "/",
		BOURL:  server.URL + "/admin-dev/",
	}
}

// Close shuts down the storefront.
func (s *Storefront) Close() {
	s.Server.Close()
}

func price(v float64) string {
	return "€" + strconv.FormatFloat(v, 'f', 2, 64)
}

func writePage(w http.ResponseWriter, title, bodyID, content string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body id="%s">
<header>
  <div id="_desktop_logo"><a href="/">shop</a></div>
  <div id="search_widget"><form method="get" action="/search"><input type="text" name="s"></form></div>
</header>
<main id="content">%s</main>
%s
</body>
</html>`, title, bodyID, content, quickViewModal)
}

func miniatures(products []storeProduct) string {
	var b strings.Builder
	b.WriteString(`<div class="products">`)
	for _, p := range products {
		fmt.Fprintf(&b, `
<article class="product-miniature js-product-miniature" data-id-product="%d" data-name="%s" data-customizable="%t">
  <a class="thumbnail" href="#"><img src="/img/%s.svg" alt=""></a>
  <h2 class="product-title">%s</h2>
  <span class="price">%s</span>
  <a class="quick-view" href="#">Quick view</a>
</article>`, p.ID, p.Name, p.Customizable, p.CoverImage, p.Name, price(p.FinalPrice))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func serveHome(w http.ResponseWriter, r *http.Request) {
	writePage(w, "shop", "index", `<section class="featured-products">
  <h2>Popular Products</h2>`+miniatures(storeProducts)+`
  <a class="all-product-link" href="/search?s=">All products</a>
</section>`)
}

func serveSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("s"))
	var found []storeProduct
	for _, p := range storeProducts {
		if strings.Contains(strings.ToLower(p.Name), query) || strings.EqualFold(p.Reference, query) {
			found = append(found, p)
		}
	}
	writePage(w, "Search", "search", `<section id="js-product-list">`+miniatures(found)+`</section>`)
}

func serveCart(w http.ResponseWriter, r *http.Request) {
	var lines strings.Builder
	if c, err := r.Cookie("cart"); err == nil {
		id, _ := strconv.Atoi(c.Value)
		for _, p := range storeProducts {
			if p.ID != id {
				continue
			}
			fmt.Fprintf(&lines, `
<li class="cart-item">
  <div class="product-line-grid">
    <span class="product-image"><img src="/img/%s.svg" alt=""></span>
    <div class="product-line-info"><a class="label" href="#">%s</a></div>
    <div class="product-line-info product-price">
      <div class="product-discount">
        <span class="regular-price">%s</span>
        <span class="discount discount-percentage">-%d%%</span>
      </div>
      <div class="current-price"><span class="price">%s</span></div>
    </div>`, p.CoverImage, p.Name, price(p.RetailPrice), p.Discount, price(p.FinalPrice))
			for _, attr := range p.Attributes {
				fmt.Fprintf(&lines, `
    <div class="product-line-info"><span class="label">%s:</span> <span class="value">%s</span></div>`, strings.ToUpper(attr.Name[:1])+attr.Name[1:], attr.Value)
			}
			fmt.Fprintf(&lines, `
    <input class="js-cart-line-product-quantity" type="number" value="1">
    <span class="product-price"><strong>%s</strong></span>
  </div>
</li>`, price(p.FinalPrice))
		}
	}
	writePage(w, "Cart", "cart", `<section id="main"><ul class="cart-items">`+lines.String()+`</ul></section>`)
}

func serveDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Dashboard • shop</title></head>
<body>
  <a id="header_shopname" href="/" target="_blank">View my shop</a>
</body>
</html>`)
}

var quickViewModal = blockCartModal(storeProducts[0]) + `
<div class="modal quickview" style="display:none">
  <h1 class="h1"></h1>
  <button class="btn btn-primary add-to-cart" data-button-action="add-to-cart" type="button">Add to cart</button>
</div>
<script>
const quickView = document.querySelector('.modal.quickview');
document.querySelectorAll('.js-product-miniature a.quick-view').forEach((link) => {
  link.addEventListener('click', (e) => {
    e.preventDefault();
    const product = link.closest('.js-product-miniature');
    quickView.dataset.idProduct = product.dataset.idProduct;
    quickView.querySelector('h1').textContent = product.dataset.name;
    quickView.querySelector('button.add-to-cart').disabled = product.dataset.customizable === 'true';
    quickView.style.display = 'block';
  });
});
quickView.querySelector('button.add-to-cart').addEventListener('click', () => {
  document.cookie = 'cart=' + quickView.dataset.idProduct + '; path=/';
  quickView.style.display = 'none';
  document.getElementById('blockcart-modal').style.display = 'block';
});
</script>`

func blockCartModal(p storeProduct) string {
	var attrs strings.Builder
	for _, attr := range p.Attributes {
		fmt.Fprintf(&attrs, `<span class="product-attribute">%s: %s</span><br>`, strings.ToUpper(attr.Name[:1])+attr.Name[1:], attr.Value)
	}
	return fmt.Sprintf(`
<div id="blockcart-modal" class="modal" style="display:none">
  <h4 id="myModalLabel" class="modal-title">✓ Product successfully added to your shopping cart</h4>
  <h6 class="product-name">%s</h6>
  <p class="product-price">%s</p>
  %s
  <span class="product-quantity">Quantity: <strong>1</strong></span>
  <div class="cart-content">
    <p class="cart-products-count">There is 1 item in your cart.</p>
    <p><span class="label">Subtotal:</span> <span class="subtotal value">%s</span></p>
    <p><span class="label">Shipping:</span> <span class="shipping value">Free</span></p>
    <div class="product-total"><span class="label">Total (tax incl.)</span> <span class="value">%s</span></div>
    <div class="cart-content-btn"><a href="/cart" class="btn btn-primary">Proceed to checkout</a></div>
  </div>
</div>`, p.Name, price(p.FinalPrice), attrs.String(), price(p.FinalPrice), price(p.FinalPrice))
}
