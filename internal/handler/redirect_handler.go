package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/redirect"
	"github.com/achoumais/achoumais/internal/service"
	"github.com/achoumais/achoumais/internal/view"
)

// RedirectHandler renders the affiliate redirect interstitial and the
// tracked outbound hop.
type RedirectHandler struct {
	redirectService *service.RedirectService
	siteName        string
	countdown       int
}

// NewRedirectHandler constructs a RedirectHandler.
func NewRedirectHandler(redirectService *service.RedirectService, siteName string, countdown int) *RedirectHandler {
	return &RedirectHandler{
		redirectService: redirectService,
		siteName:        siteName,
		countdown:       countdown,
	}
}

// GetProduct handles GET /p/produto?id=&store=. Each terminal state renders
// its own page; success renders the countdown interstitial whose meta
// refresh targets the outbound hop with trigger=auto, and fires the
// product_view / page_view events.
func (h *RedirectHandler) GetProduct(c *gin.Context) {
	id := c.Query("id")
	store := c.Query("store")

	res := h.redirectService.Resolve(c.Request.Context(), id, store)

	data := view.RedirectPageData{
		SiteName:  h.siteName,
		Countdown: h.countdown,
	}
	status := http.StatusOK

	switch res.State {
	case redirect.StateNotFound:
		status = http.StatusNotFound
		data.Title = "Produto não encontrado | " + h.siteName
		data.Name = "Produto não encontrado"

	case redirect.StateLoadError:
		status = http.StatusBadGateway
		data.Title = "Erro ao carregar | " + h.siteName
		data.Name = "Erro ao carregar produtos"
		data.Desc = "Não foi possível carregar a lista de produtos agora."

	case redirect.StateUnavailable:
		status = http.StatusGone
		data.Title = "Link indisponível | " + h.siteName
		data.Name = res.Product.Title
		data.Desc = "Link indisponível no momento."

	case redirect.StateSuccess:
		data.Title = res.Product.Title + " | " + h.siteName
		data.Name = res.Product.Title
		data.Desc = res.Product.Description
		data.ImageURL = res.Product.ImageURL

		storeLabel := res.Offer.StoreLabel
		if storeLabel == "" {
			storeLabel = "na loja"
		}
		data.CTAText = "Abrir " + storeLabel + " agora"
		data.CTAClass = view.BtnClassForCanonical(res.Store)
		data.CTAHref = view.OutboundPath(res.Product.ID, res.Store, "manual")
		data.AutoURL = view.OutboundPath(res.Product.ID, res.Store, "auto")

		h.redirectService.TrackView(c.Request.Context(), res, data.Title)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := view.WriteRedirectPage(c.Writer, data); err != nil {
		log.Error().Err(err).Msg("Failed to render redirect page")
	}
}

// GetOutbound handles GET /out?id=&store=&t=. It re-resolves the offer,
// fires the manual_click or auto_redirect event and sends the visitor to
// the affiliate URL. The interstitial's countdown keeps ticking even after
// a manual click, so both triggers can fire for one visit; whichever
// navigation lands first wins.
func (h *RedirectHandler) GetOutbound(c *gin.Context) {
	id := c.Query("id")
	store := c.Query("store")
	trigger := c.Query("t")
	if trigger != "auto" {
		trigger = "manual"
	}

	res := h.redirectService.Resolve(c.Request.Context(), id, store)

	if res.State != redirect.StateSuccess {
		h.GetProduct(c)
		return
	}

	h.redirectService.TrackOutbound(c.Request.Context(), res, trigger)
	c.Redirect(http.StatusFound, res.AffiliateURL)
}
