package backup

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

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
	g := rg.Group("/admin/backup", authMW)

	g.GET("", h.list)
	g.GET("/new", h.createAndDownload)
	g.GET("/:filename", h.download)
	g.POST("/upload-to-storage", h.pushToStorage)
	g.DELETE("/:filename", h.deleteOne)
}

type backupItem struct {
	Filename string `json:"filename"`
	Size     string `json:"size"`
}

// GET /admin/backup
func (h *Handler) list(c *gin.Context) {
	names, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := []backupItem{}
	for _, name := range names {
		info, err := os.Stat(filepath.Join(h.svc.cfg.Dir, name))
		if err != nil {
			continue
		}
		items = append(items, backupItem{Filename: name, Size: formatSize(info.Size())})
	}
	response.OK(c, items)
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// GET /admin/backup/new
func (h *Handler) createAndDownload(c *gin.Context) {
	buf, err := h.svc.CreateArchive()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if err := os.MkdirAll(h.svc.cfg.Dir, 0o755); err != nil {
		response.InternalError(c, err)
		return
	}
	filename := fmt.Sprintf("backup-%s.zip", time.Now().Format("2006-01-02T15-04-05"))
	if err := os.WriteFile(filepath.Join(h.svc.cfg.Dir, filename), buf.Bytes(), 0o644); err != nil {
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// GET /admin/backup/:filename
func (h *Handler) download(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	data, err := os.ReadFile(filepath.Join(h.svc.cfg.Dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// POST /admin/backup/upload-to-storage
func (h *Handler) pushToStorage(c *gin.Context) {
	if h.svc.store == nil {
		response.BadRequest(c, "object storage is not configured")
		return
	}
	filename, err := h.svc.WriteLocal()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if err := h.svc.PushToStorage(c.Request.Context(), filename); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"uploaded": true, "filename": filename})
}

// DELETE /admin/backup/:filename
func (h *Handler) deleteOne(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	if err := os.Remove(filepath.Join(h.svc.cfg.Dir, filename)); err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
