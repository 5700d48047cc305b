package view

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"github.com/achoumais/achoumais/internal/catalog"
)

// CatalogPageData feeds the catalog page template.
type CatalogPageData struct {
	SiteName   string
	Query      string
	Cards      template.HTML
	Pagination template.HTML
	Daily      template.HTML
	Year       int
}

// RedirectPageData feeds the redirect interstitial template.
type RedirectPageData struct {
	SiteName  string
	Title     string
	Name      string
	Desc      string
	ImageURL  string
	CTAText   string
	CTAClass  string
	CTAHref   string
	AutoURL   string
	Countdown int
	Year      int
}

// OutboundPath builds the tracked outbound hop URL for a product/store pair.
// trigger is "auto" for the countdown redirect and "manual" for the CTA.
func OutboundPath(productID, store, trigger string) string {
	v := url.Values{}
	v.Set("id", productID)
	v.Set("store", store)
	v.Set("t", trigger)
	return "/out?" + v.Encode()
}

// RenderDailySection renders the product-of-the-day block, or an empty
// string when no pick is available (the section is best-effort and must
// never break the page).
func RenderDailySection(p catalog.Product, ok bool) template.HTML {
	if !ok {
		return ""
	}

	name := p.Title
	if name == "" {
		name = "Achado do dia"
	}
	desc := p.Description
	if desc == "" {
		desc = "Confira a oferta selecionada de hoje."
	}

	imgStyle := ""
	if p.ImageURL != "" {
		imgStyle = fmt.Sprintf(` style="background-image:url('%s')"`, template.HTMLEscapeString(p.ImageURL))
	}

	buttons := ""
	for _, offer := range catalog.DailyOffers(p) {
		buttons += string(RenderStoreButton(offer.Store, offer.StoreLabel, p.ID, p.Title))
	}

	return template.HTML(fmt.Sprintf(
		`<section class="daily"><div id="dailyImg" class="dailyImg"%s role="img" aria-label="Achado do dia"></div>`+
			`<div class="dailyBody"><h3 id="dailyName">%s</h3><p id="dailyDesc">%s</p>`+
			`<div id="dailyActions" class="dailyActions">%s</div></div></section>`,
		imgStyle,
		template.HTMLEscapeString(name),
		template.HTMLEscapeString(desc),
		buttons,
	))
}

// WriteCatalogPage executes the catalog page template.
func WriteCatalogPage(w io.Writer, data CatalogPageData) error {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return catalogPageTemplate.Execute(w, data)
}

// WriteRedirectPage executes the redirect interstitial template.
func WriteRedirectPage(w io.Writer, data RedirectPageData) error {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return redirectPageTemplate.Execute(w, data)
}

var catalogPageTemplate = template.Must(template.New("catalog").Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteName}} — Achados e ofertas</title>
<link rel="stylesheet" href="/assets/css/site.css">
</head>
<body>
<header class="topbar">
  <a class="brand" href="/" data-nav="home">{{.SiteName}}</a>
  <form class="search" action="/" method="get">
    <input id="searchInput" type="search" name="q" value="{{.Query}}" placeholder="Buscar produto...">
  </form>
</header>
<main>
{{.Daily}}
<div id="productsGrid" class="grid">{{.Cards}}</div>
<div id="pagination" class="pagination">{{.Pagination}}</div>
</main>
<footer>© <span id="year">{{.Year}}</span> {{.SiteName}}</footer>
<script>
(function () {
  document.addEventListener("click", function (e) {
    var link = e.target.closest("a");
    if (!link) return;
    var params = null;
    var nav = link.getAttribute("data-nav");
    if (nav) params = { name: "nav_click", params: { section: nav } };
    var cta = link.getAttribute("data-cta");
    if (!params && cta) params = { name: "cta_click", params: { action: cta } };
    var productName = link.getAttribute("data-product-name");
    if (!params && productName) {
      params = { name: "product_click", params: {
        product_id: link.getAttribute("data-product-id") || "",
        product_name: productName,
        store: link.getAttribute("data-product-store") || "",
        redirect_path: link.getAttribute("data-product-path") || link.getAttribute("href") || ""
      }};
    }
    if (!params) return;
    try {
      navigator.sendBeacon("/v1/track", new Blob([JSON.stringify(params)], { type: "application/json" }));
    } catch (err) {}
  });

  if (new URLSearchParams(window.location.search).has("page")) {
    var grid = document.getElementById("productsGrid");
    if (grid) smoothScrollTo(grid.offsetTop - 20, 700);
  }

  function smoothScrollTo(targetY, duration) {
    try {
      var startY = window.scrollY || 0;
      var diff = targetY - startY;
      var start = performance.now();
      function step(now) {
        var t = Math.min(1, (now - start) / Math.max(1, duration));
        var eased = t < 0.5 ? 2 * t * t : 1 - Math.pow(-2 * t + 2, 2) / 2;
        window.scrollTo(0, startY + diff * eased);
        if (t < 1) requestAnimationFrame(step);
      }
      requestAnimationFrame(step);
    } catch (e) {
      window.scrollTo(0, targetY);
    }
  }
})();
</script>
</body>
</html>
`))

var redirectPageTemplate = template.Must(template.New("redirect").Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .AutoURL}}<meta http-equiv="refresh" content="{{.Countdown}};url={{.AutoURL}}">{{end}}
<link rel="stylesheet" href="/assets/css/site.css">
</head>
<body>
<main class="redirect">
  {{if .ImageURL}}<img id="productImg" src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
  <h1 id="productName">{{.Name}}</h1>
  <p id="productDesc">{{.Desc}}</p>
  {{if .CTAHref}}
  <a id="cta" class="btn {{.CTAClass}}" href="{{.CTAHref}}" rel="nofollow sponsored">{{.CTAText}}</a>
  <p class="countdown">Redirecionando em <span id="count">{{.Countdown}}</span>s...</p>
  {{end}}
</main>
<footer>© <span id="year">{{.Year}}</span> {{.SiteName}}</footer>
{{if .CTAHref}}
<script>
(function () {
  var seconds = {{.Countdown}};
  var countEl = document.getElementById("count");
  var timer = setInterval(function () {
    seconds--;
    if (countEl) countEl.textContent = seconds;
    if (seconds <= 0) clearInterval(timer);
  }, 1000);
})();
</script>
{{end}}
</body>
</html>
`))
