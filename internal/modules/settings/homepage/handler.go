package homepage

import (
	"github.com/foxbeep/site-core/internal/middleware"
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
	rg.GET("/homepage/settings", h.get)

	a := rg.Group("/admin/homepage", authMW)
	a.GET("/settings", h.get)
	a.PUT("/settings", h.update)
	a.DELETE("/settings/image", h.deleteImage)
	a.GET("/history", h.history)
}

// GET /homepage/settings
func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// PUT /admin/homepage/settings
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid settings payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.Update(c.Request.Context(), &dto, admin.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// DELETE /admin/homepage/settings/image
func (h *Handler) deleteImage(c *gin.Context) {
	var dto DeleteImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "publicId is required")
		return
	}

	doc, err := h.svc.DeleteImage(c.Request.Context(), dto.PublicID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /admin/homepage/history
func (h *Handler) history(c *gin.Context) {
	versions, err := h.svc.History()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, versions)
}
