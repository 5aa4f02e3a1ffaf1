package newsletter

import (
	"errors"

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
	g := rg.Group("/newsletter")
	g.POST("/subscribe", h.subscribe)
	g.POST("/unsubscribe", h.unsubscribe)

	a := rg.Group("/admin/newsletter", authMW)
	a.GET("/subscribers", h.subscribers)
	a.GET("/stats", h.stats)
}

// POST /newsletter/subscribe
func (h *Handler) subscribe(c *gin.Context) {
	var dto SubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	sub, err := h.svc.Subscribe(&dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrAlreadySubscribed):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, sub)
}

// POST /newsletter/unsubscribe
func (h *Handler) unsubscribe(c *gin.Context) {
	var dto UnsubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	if err := h.svc.Unsubscribe(dto.Email); err != nil {
		if errors.Is(err, ErrNotSubscribed) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"unsubscribed": true})
}

// GET /admin/newsletter/subscribers
func (h *Handler) subscribers(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.Subscribers(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// GET /admin/newsletter/stats
func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}
