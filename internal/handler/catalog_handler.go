package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/service"
	"github.com/achoumais/achoumais/internal/view"
)

// CatalogHandler renders the catalog page: search, pagination, product
// cards and the daily-pick section.
type CatalogHandler struct {
	catalogService *service.CatalogService
	siteName       string
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, siteName string) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, siteName: siteName}
}

// GetCatalog handles GET / with optional q and page query parameters.
// A feed failure renders the inline error note with cleared pagination
// instead of an error page; there is no retry.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	query := c.Query("q")

	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	data := view.CatalogPageData{
		SiteName: h.siteName,
		Query:    query,
	}

	result, err := h.catalogService.Browse(c.Request.Context(), query, page)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load product feed")
		data.Cards = view.RenderFeedError()
	} else {
		data.Cards = view.RenderCards(result.Page.Items)
		data.Pagination = view.RenderPagination(result.Page, query)
		data.Daily = view.RenderDailySection(result.Daily, result.HasDaily)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := view.WriteCatalogPage(c.Writer, data); err != nil {
		log.Error().Err(err).Msg("Failed to render catalog page")
	}
}
