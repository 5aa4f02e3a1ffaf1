package company

import (
	"errors"

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
	rg.GET("/company/details", h.get)

	a := rg.Group("/admin/company", authMW)
	a.GET("/details", h.get)
	a.PUT("/details", h.update)
	a.GET("/history", h.history)
}

// GET /company/details
func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// PUT /admin/company/details
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid details payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.Update(c.Request.Context(), &dto, admin.Email)
	if err != nil {
		if errors.Is(err, ErrCompanyNameRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /admin/company/history
func (h *Handler) history(c *gin.Context) {
	versions, err := h.svc.History()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, versions)
}
