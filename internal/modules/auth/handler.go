package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/foxbeep/site-core/internal/middleware"
	"github.com/foxbeep/site-core/internal/pkg/jwt"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const cookieMaxAge = int(jwt.DefaultTTL / time.Second)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/login", h.login)

	a := g.Group("", authMW)
	a.GET("/verify", h.verify)
	a.GET("/profile", h.profile)
	a.POST("/logout", h.logout)
	a.POST("/create", h.createAdmin)
	a.PUT("/password", h.changePassword)

	admin := rg.Group("/admin", authMW)
	admin.GET("/profile", h.profile)
	admin.PUT("/profile", h.changePassword)
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	token, identity, err := h.svc.Login(&dto, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, errAccountDisabled):
			response.Unauthorized(c, response.CodeAccountInactive, err.Error())
		case errors.Is(err, errInvalidCredentials):
			response.Unauthorized(c, response.CodeVerificationFailed, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, token, cookieMaxAge, "/", "", false, true)
	response.OK(c, loginResponse{Token: token, Admin: toAdminResponse(identity)})
}

// GET /auth/verify
func (h *Handler) verify(c *gin.Context) {
	response.OK(c, gin.H{"valid": true, "admin": toAdminResponse(middleware.CurrentAdmin(c))})
}

// GET /auth/profile
func (h *Handler) profile(c *gin.Context) {
	response.OK(c, toAdminResponse(middleware.CurrentAdmin(c)))
}

// POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
	response.OK(c, gin.H{"message": "logged out"})
}

// POST /auth/admins
func (h *Handler) createAdmin(c *gin.Context) {
	var dto CreateAdminDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "email and a password of at least 8 characters are required")
		return
	}

	admin, err := h.svc.CreateAdmin(&dto)
	if err != nil {
		if errors.Is(err, errDuplicateEmail) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, admin)
}

// PUT /auth/password
func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "current and new password are required, new password at least 8 characters")
		return
	}

	err := h.svc.ChangePassword(middleware.CurrentAdmin(c), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errEnvAdminReadOnly):
			response.Forbidden(c, err.Error())
		case errors.Is(err, errInvalidCredentials):
			response.Unauthorized(c, response.CodeVerificationFailed, "current password is incorrect")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"message": "password updated"})
}

func toAdminResponse(identity *middleware.AdminIdentity) adminResponse {
	if identity == nil {
		return adminResponse{}
	}
	return adminResponse{
		ID:     identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		Source: identity.Source,
	}
}
