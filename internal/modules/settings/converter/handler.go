package converter

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
	rg.GET("/converter/settings", h.getAll)
	rg.GET("/converter/:converterId", h.get)

	a := rg.Group("/admin/converter", authMW)
	a.GET("/settings", h.getAll)
	a.GET("/:converterId", h.get)
	a.PUT("/:converterId", h.update)
	a.GET("/:converterId/history", h.history)
	a.DELETE("/:converterId/image", h.deleteImage)
}

// GET /converter/:converterId
func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get(c.Param("converterId"))
	if err != nil {
		if errors.Is(err, ErrUnknownConverter) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /converter/settings
func (h *Handler) getAll(c *gin.Context) {
	all, err := h.svc.GetAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, all)
}

// PUT /admin/converter/:converterId
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid settings payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.Update(c.Request.Context(), c.Param("converterId"), &dto, admin.Email)
	if err != nil {
		if errors.Is(err, ErrUnknownConverter) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /admin/converter/:converterId/history
func (h *Handler) history(c *gin.Context) {
	versions, err := h.svc.History(c.Param("converterId"))
	if err != nil {
		if errors.Is(err, ErrUnknownConverter) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, versions)
}

// DELETE /admin/converter/:converterId/image
func (h *Handler) deleteImage(c *gin.Context) {
	var dto DeleteImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "publicId is required")
		return
	}

	doc, err := h.svc.DeleteImage(c.Request.Context(), c.Param("converterId"), dto.PublicID)
	if err != nil {
		if errors.Is(err, ErrUnknownConverter) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}
