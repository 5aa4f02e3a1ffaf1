package upload

import (
	"errors"
	"strings"

	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/middleware"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// allowedFolders bounds the folder query parameter to known prefixes.
var allowedFolders = map[string]bool{
	"":        true,
	"general": true,
	"company": true,
	"ads":     true,
}

type Handler struct {
	svc *Service
	cfg config.UploadConfig
}

func NewHandler(svc *Service, cfg config.UploadConfig) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/admin", authMW)
	a.POST("/upload/image", h.uploadImage)
	a.DELETE("/upload/image", h.deleteImage)
	a.POST("/company/upload-image", h.uploadCompanyImage)
}

// POST /admin/upload/image?folder=...
// The general endpoint accepts anything up to the multipart body limit.
func (h *Handler) uploadImage(c *gin.Context) {
	h.handleUpload(c, c.DefaultQuery("folder", "general"), h.cfg.BodyLimitBytes)
}

// POST /admin/company/upload-image
// Branding assets carry the tighter per-file limit.
func (h *Handler) uploadCompanyImage(c *gin.Context) {
	h.handleUpload(c, "company", h.cfg.ImageLimitBytes)
}

func (h *Handler) handleUpload(c *gin.Context, folder string, limit int64) {
	if !validFolder(folder) {
		response.BadRequest(c, "unknown upload folder")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "multipart field 'image' is required")
		return
	}

	admin := middleware.CurrentAdmin(c)
	result, err := h.svc.Upload(c.Request.Context(), file, folder, admin.Email, limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAnImage), errors.Is(err, ErrTooLarge):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrStorageDisabled):
			response.InternalError(c, err)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, result)
}

// DELETE /admin/upload/image {publicId}
func (h *Handler) deleteImage(c *gin.Context) {
	var dto struct {
		PublicID string `json:"publicId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "publicId is required")
		return
	}

	if err := h.svc.DeleteObject(c.Request.Context(), dto.PublicID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func validFolder(folder string) bool {
	if allowedFolders[folder] {
		return true
	}
	// converters/<id> and homepage/<section> style prefixes
	parts := strings.SplitN(folder, "/", 2)
	return parts[0] == "converters" || parts[0] == "homepage"
}
