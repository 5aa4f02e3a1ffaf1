package ads

import (
	"errors"
	"strconv"

	"github.com/foxbeep/site-core/internal/middleware"
	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/pagination"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/ads/public", h.publicAds)
	rg.POST("/ads/public", h.trackEvent)

	a := rg.Group("/admin/ads", authMW)
	a.GET("", h.list)
	a.POST("", h.create)
	a.GET("/analytics", h.campaignStats)
	a.GET("/:id", h.get)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
	a.PATCH("/:id", h.toggle)
	a.GET("/:id/analytics", h.adAnalytics)
	a.POST("/cleanup", h.cleanup)
}

// GET /ads/public
func (h *Handler) publicAds(c *gin.Context) {
	items, err := h.svc.GetActiveAds()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]PublicAd, len(items))
	for i := range items {
		out[i] = ToPublic(&items[i])
	}
	c.Header("Cache-Control", "public, s-maxage=60, stale-while-revalidate=120")
	response.OK(c, out)
}

// POST /ads/public — impression/click/skip/complete tracking
func (h *Handler) trackEvent(c *gin.Context) {
	var dto TrackEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "action and adId are required")
		return
	}

	metadata := dto.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	if _, ok := metadata["userAgent"]; !ok {
		metadata["userAgent"] = c.Request.UserAgent()
	}
	if _, ok := metadata["ip"]; !ok {
		metadata["ip"] = c.ClientIP()
	}
	if _, ok := metadata["referrer"]; !ok {
		metadata["referrer"] = c.Request.Referer()
	}

	switch dto.Action {
	case models.AdEventImpression:
		h.svc.RecordImpression(dto.AdID, metadata)
	case models.AdEventClick:
		h.svc.RecordClick(dto.AdID, metadata)
	case models.AdEventSkip, models.AdEventComplete:
		h.svc.RecordEvent(dto.AdID, dto.Action, metadata)
	default:
		response.BadRequest(c, "unknown action")
		return
	}
	response.OK(c, gin.H{"recorded": true})
}

// GET /admin/ads
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	filters := ListFilters{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true" || raw == "1"
		filters.Active = &active
	}

	items, pag, err := h.svc.List(q, filters)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// POST /admin/ads
func (h *Handler) create(c *gin.Context) {
	var dto AdDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid advertisement payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	ad, err := h.svc.Create(&dto, admin.Email)
	if err != nil {
		if errors.Is(err, ErrMissingSrc) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, ad)
}

// GET /admin/ads/:id
func (h *Handler) get(c *gin.Context) {
	ad, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, ad)
}

// PUT /admin/ads/:id
func (h *Handler) update(c *gin.Context) {
	var dto AdDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid advertisement payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	ad, err := h.svc.Update(c.Param("id"), &dto, admin.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, ad)
}

// DELETE /admin/ads/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// PATCH /admin/ads/:id — toggle active flag
func (h *Handler) toggle(c *gin.Context) {
	var dto ToggleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "active flag is required")
		return
	}

	if err := h.svc.Toggle(c.Param("id"), dto.Active); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"active": dto.Active})
}

// GET /admin/ads/:id/analytics?days=30
func (h *Handler) adAnalytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	analytics, err := h.svc.GetAdAnalytics(c.Param("id"), days)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, analytics)
}

// GET /admin/ads/analytics — campaign overview
func (h *Handler) campaignStats(c *gin.Context) {
	stats, err := h.svc.GetCampaignStats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

// POST /admin/ads/cleanup — manual expiry sweep
func (h *Handler) cleanup(c *gin.Context) {
	n, err := h.svc.CleanupExpiredAds()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"expired": n})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAdNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrMissingSrc):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
