package adsense

import (
	"errors"
	"strconv"

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
	rg.GET("/adsense/settings", h.getPublic)
	rg.GET("/adsense/performance", h.performance)

	a := rg.Group("/admin/adsense", authMW)
	a.GET("/settings", h.get)
	a.PUT("/settings", h.update)
	a.GET("/history", h.history)
	a.PUT("/placement-status", h.updatePlacementStatus)
	a.GET("/custom-units", h.listCustomUnits)
	a.POST("/custom-units", h.addCustomUnit)
	a.PUT("/custom-units", h.updateCustomUnitStatus)
	a.DELETE("/custom-units/:unitId", h.removeCustomUnit)
}

// GET /adsense/settings
func (h *Handler) getPublic(c *gin.Context) {
	settings, err := h.svc.GetPublicSettings()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, settings)
}

// GET /adsense/performance?days=30
func (h *Handler) performance(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	response.OK(c, h.svc.PerformanceStats(days))
}

// GET /admin/adsense/settings
func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// PUT /admin/adsense/settings
func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid settings payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.Update(&dto, admin.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /admin/adsense/history?limit=10
func (h *Handler) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	versions, err := h.svc.History(limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, versions)
}

// PUT /admin/adsense/placement-status
func (h *Handler) updatePlacementStatus(c *gin.Context) {
	var dto PlacementStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "placement and status are required")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.UpdatePlacementStatus(dto.Placement, dto.Status, admin.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /admin/adsense/custom-units
func (h *Handler) listCustomUnits(c *gin.Context) {
	doc, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc.CustomAdUnits)
}

// POST /admin/adsense/custom-units
func (h *Handler) addCustomUnit(c *gin.Context) {
	var dto CustomUnitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid custom unit payload")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, unit, err := h.svc.AddCustomAdUnit(&dto, admin.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"settings": doc, "unit": unit})
}

// PUT /admin/adsense/custom-units
func (h *Handler) updateCustomUnitStatus(c *gin.Context) {
	var dto UnitStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "unitId and status are required")
		return
	}

	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.UpdateCustomAdUnitStatus(dto.UnitID, dto.Status, admin.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, doc)
}

// DELETE /admin/adsense/custom-units/:unitId
func (h *Handler) removeCustomUnit(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	doc, err := h.svc.RemoveCustomAdUnit(c.Param("unitId"), admin.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPlacement):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrUnitNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
