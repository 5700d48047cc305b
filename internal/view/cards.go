package view

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/achoumais/achoumais/internal/catalog"
)

// RedirectPath builds the internal redirect link for a product/store pair.
func RedirectPath(productID, storeKey string) string {
	return fmt.Sprintf("/p/produto?id=%s&store=%s", url.QueryEscape(productID), url.QueryEscape(storeKey))
}

// RenderStoreButton renders one call-to-action button linking into the
// redirect page. The data-product-* attributes feed the delegated click
// listener that reports product_click beacons.
func RenderStoreButton(storeKey, storeLabel, productID, productTitle string) template.HTML {
	meta := MetaForStore(storeKey)

	label := storeLabel
	if label == "" {
		label = meta.Label
	}
	redirectURL := RedirectPath(productID, meta.Key)

	var b strings.Builder
	b.WriteString(`<a class="btnSmall `)
	b.WriteString(meta.BtnClass)
	b.WriteString(`" href="`)
	b.WriteString(template.HTMLEscapeString(redirectURL))
	b.WriteString(`" data-product-id="`)
	b.WriteString(template.HTMLEscapeString(productID))
	b.WriteString(`" data-product-name="`)
	b.WriteString(template.HTMLEscapeString(productTitle))
	b.WriteString(`" data-product-store="`)
	b.WriteString(template.HTMLEscapeString(label))
	b.WriteString(`" data-product-path="`)
	b.WriteString(template.HTMLEscapeString(redirectURL))
	b.WriteString(`"><img class="storeIcon" src="`)
	b.WriteString(template.HTMLEscapeString(meta.Icon))
	b.WriteString(`" alt="`)
	b.WriteString(template.HTMLEscapeString(label))
	b.WriteString(`">`)
	b.WriteString(template.HTMLEscapeString(meta.Text))
	b.WriteString(`</a>`)
	return template.HTML(b.String())
}

// RenderCard renders one product card: optional badge/category tags, the
// thumbnail, title, description and a CTA button per valid store offer in
// retailer-priority order.
func RenderCard(p catalog.Product) template.HTML {
	var b strings.Builder

	b.WriteString(`<article class="card">`)

	thumbClass := "thumb"
	if p.ImageURL != "" {
		thumbClass = "thumb thumbImg"
	}
	b.WriteString(`<div class="`)
	b.WriteString(thumbClass)
	b.WriteString(`"`)
	if p.ImageURL != "" {
		b.WriteString(` style="background-image:url('`)
		b.WriteString(template.HTMLEscapeString(p.ImageURL))
		b.WriteString(`')"`)
	}
	b.WriteString(` role="img" aria-label="Imagem do produto"></div>`)

	b.WriteString(`<div class="cardBody"><div class="tagRow">`)
	if p.Badge != "" {
		b.WriteString(`<span class="tag hot">`)
		b.WriteString(template.HTMLEscapeString(p.Badge))
		b.WriteString(`</span>`)
	}
	if p.Category != "" {
		b.WriteString(`<span class="tag">`)
		b.WriteString(template.HTMLEscapeString(p.Category))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<h4>`)
	b.WriteString(template.HTMLEscapeString(p.Title))
	b.WriteString(`</h4><p>`)
	b.WriteString(template.HTMLEscapeString(p.Description))
	b.WriteString(`</p>`)

	b.WriteString(`<div class="cardActions">`)
	for _, offer := range catalog.SortOffers(p.Stores) {
		b.WriteString(string(RenderStoreButton(strings.ToLower(offer.Store), offer.StoreLabel, p.ID, p.Title)))
	}
	b.WriteString(`</div></div></article>`)

	return template.HTML(b.String())
}

// RenderCards renders a page of product cards.
func RenderCards(products []catalog.Product) template.HTML {
	var b strings.Builder
	for _, p := range products {
		b.WriteString(string(RenderCard(p)))
	}
	return template.HTML(b.String())
}

// RenderFeedError renders the inline note shown when the feed cannot load.
func RenderFeedError() template.HTML {
	return template.HTML(`<div class="note"><strong>Ops:</strong> não consegui carregar os produtos agora. Tente novamente.</div>`)
}

// RenderPagination renders the Anterior / Página X de Y / Próxima controls.
// Prev is disabled on the first page and Next on the last; enabled controls
// link back into the catalog with the search query preserved.
func RenderPagination(page catalog.Page, query string) template.HTML {
	var b strings.Builder

	writeBtn := func(id, label string, target int, disabled bool) {
		if disabled {
			b.WriteString(`<button class="pageBtn" id="`)
			b.WriteString(id)
			b.WriteString(`" disabled>`)
			b.WriteString(label)
			b.WriteString(`</button>`)
			return
		}
		b.WriteString(`<a class="pageBtn" id="`)
		b.WriteString(id)
		b.WriteString(`" href="`)
		b.WriteString(template.HTMLEscapeString(catalogPath(query, target)))
		b.WriteString(`">`)
		b.WriteString(label)
		b.WriteString(`</a>`)
	}

	writeBtn("prevPage", "Anterior", page.Number-1, !page.HasPrev())
	b.WriteString(`<span class="pageInfo">Página `)
	fmt.Fprintf(&b, "%d de %d", page.Number, page.TotalPages)
	b.WriteString(`</span>`)
	writeBtn("nextPage", "Próxima", page.Number+1, !page.HasNext())

	return template.HTML(b.String())
}

func catalogPath(query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if page > 1 {
		v.Set("page", fmt.Sprintf("%d", page))
	}
	if enc := v.Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}
