package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achoumais/achoumais/internal/analytics"
	"github.com/achoumais/achoumais/internal/catalog"
	"github.com/achoumais/achoumais/internal/service"
)

type captureTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (c *captureTracker) Track(_ context.Context, e analytics.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureTracker) named(name string) []analytics.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []analytics.Event
	for _, e := range c.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func writeFeed(t *testing.T, products []catalog.Product) string {
	t.Helper()
	data, err := json.Marshal(products)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "produtos.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func makeCatalogProducts(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = catalog.Product{
			ID:    fmt.Sprintf("%d", i+1),
			Title: fmt.Sprintf("Produto %d", i+1),
			Stores: []catalog.StoreOffer{
				{Store: "ml", StoreLabel: "Mercado Livre", AffiliateURL: fmt.Sprintf("https://ml.com/%d", i+1)},
			},
		}
	}
	return out
}

func newCatalogRouter(t *testing.T, feedPath string, tracker analytics.Tracker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := catalog.NewFeedLoader([]string{feedPath})
	svc := service.NewCatalogService(loader, tracker, 20)
	h := NewCatalogHandler(svc, "AchouMais")

	router := gin.New()
	router.GET("/", h.GetCatalog)
	return router
}

func doGet(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func getDocument(t *testing.T, router *gin.Engine, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(rec, req)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return rec, doc
}

func TestGetCatalogFirstPage(t *testing.T) {
	feed := writeFeed(t, makeCatalogProducts(25))
	router := newCatalogRouter(t, feed, analytics.Noop{})

	rec, doc := getDocument(t, router, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	assert.Equal(t, 20, doc.Find("article.card").Length())
	assert.Equal(t, "Página 1 de 2", doc.Find("span.pageInfo").Text())

	// Prev disabled, next links to page 2
	assert.Equal(t, 1, doc.Find("button#prevPage[disabled]").Length())
	next, ok := doc.Find("a#nextPage").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/?page=2", next)
}

func TestGetCatalogLastPage(t *testing.T) {
	feed := writeFeed(t, makeCatalogProducts(25))
	router := newCatalogRouter(t, feed, analytics.Noop{})

	_, doc := getDocument(t, router, "/?page=2")

	assert.Equal(t, 5, doc.Find("article.card").Length())
	assert.Equal(t, "Página 2 de 2", doc.Find("span.pageInfo").Text())
	assert.Equal(t, 1, doc.Find("button#nextPage[disabled]").Length())

	prev, ok := doc.Find("a#prevPage").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/", prev)
}

func TestGetCatalogSearchIgnoresDiacritics(t *testing.T) {
	products := makeCatalogProducts(3)
	products[1].Title = "Promoção Relâmpago"
	feed := writeFeed(t, products)
	router := newCatalogRouter(t, feed, analytics.Noop{})

	_, doc := getDocument(t, router, "/?q=promocao")

	require.Equal(t, 1, doc.Find("article.card").Length())
	assert.Contains(t, doc.Find("article.card h4").Text(), "Promoção Relâmpago")
	assert.Equal(t, "Página 1 de 1", doc.Find("span.pageInfo").Text())

	// Search box keeps the query
	value, _ := doc.Find("input#searchInput").Attr("value")
	assert.Equal(t, "promocao", value)
}

func TestGetCatalogSearchNoResults(t *testing.T) {
	feed := writeFeed(t, makeCatalogProducts(3))
	router := newCatalogRouter(t, feed, analytics.Noop{})

	rec, doc := getDocument(t, router, "/?q=geladeira")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, doc.Find("article.card").Length())
	assert.Equal(t, "Página 1 de 1", doc.Find("span.pageInfo").Text())
}

func TestGetCatalogOutOfRangePageClamps(t *testing.T) {
	feed := writeFeed(t, makeCatalogProducts(25))
	router := newCatalogRouter(t, feed, analytics.Noop{})

	_, doc := getDocument(t, router, "/?page=99")

	assert.Equal(t, 5, doc.Find("article.card").Length())
	assert.Equal(t, "Página 2 de 2", doc.Find("span.pageInfo").Text())
}

func TestGetCatalogRendersDailySection(t *testing.T) {
	capture := &captureTracker{}
	feed := writeFeed(t, makeCatalogProducts(5))
	router := newCatalogRouter(t, feed, capture)

	rec, doc := getDocument(t, router, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, doc.Find("section.daily").Length())
	assert.NotEmpty(t, doc.Find("h3#dailyName").Text())

	events := capture.named(analytics.EventDailyShow)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].Params["product_id"])
	assert.NotEmpty(t, events[0].Params["day"])
}

func TestGetCatalogFeedFailureRendersNote(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	router := newCatalogRouter(t, missing, analytics.Noop{})

	rec, doc := getDocument(t, router, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, doc.Find("div.note").Text(), "não consegui carregar os produtos agora")
	assert.Equal(t, 0, doc.Find("article.card").Length())
	assert.Equal(t, 0, doc.Find("span.pageInfo").Length())
}

func TestGetCatalogCardButtonsLinkToRedirectPage(t *testing.T) {
	products := []catalog.Product{
		{
			ID:    "7",
			Title: "Fone TWS",
			Stores: []catalog.StoreOffer{
				{Store: "sp", StoreLabel: "Shopee", AffiliateURL: "https://sh.com/a"},
				{Store: "ml", StoreLabel: "Mercado Livre", AffiliateURL: "https://ml.com/a"},
			},
		},
	}
	feed := writeFeed(t, products)
	router := newCatalogRouter(t, feed, analytics.Noop{})

	_, doc := getDocument(t, router, "/")

	buttons := doc.Find("article.card a.btnSmall")
	require.Equal(t, 2, buttons.Length())

	// Priority sorted: ml first, then sp
	first, _ := buttons.First().Attr("href")
	assert.Equal(t, "/p/produto?id=7&store=ml", first)
	second, _ := buttons.Last().Attr("href")
	assert.Equal(t, "/p/produto?id=7&store=sp", second)

	name, _ := buttons.First().Attr("data-product-name")
	assert.Equal(t, "Fone TWS", name)
}
