package middleware

import (
	"errors"
	"strings"

	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/jwt"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyAdmin = "admin_identity"

	// TokenCookieName mirrors the cookie set at login.
	TokenCookieName = "token"
)

// AdminIdentity is the resolved authenticated administrator. Source is
// either jwt.SourceDatabase (backed by an admins row) or
// jwt.SourceEnvironment (provisioned from configuration).
type AdminIdentity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

type authError struct {
	code    string
	message string
}

func (e *authError) Error() string { return e.message }

// Auth returns a middleware that enforces admin JWT authentication.
func Auth(db *gorm.DB, cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentAdmin(c) != nil {
			c.Next()
			return
		}

		token := ExtractToken(c)
		if token == "" {
			response.Unauthorized(c, response.CodeNoToken, "authentication token required")
			return
		}

		identity, err := ResolveIdentity(db, cfg, token)
		if err != nil {
			var ae *authError
			if errors.As(err, &ae) {
				response.Unauthorized(c, ae.code, ae.message)
				return
			}
			response.Unauthorized(c, response.CodeInvalidToken, "invalid or expired token")
			return
		}

		c.Set(ContextKeyAdmin, identity)
		c.Next()
	}
}

// OptionalAuth resolves the admin identity into the request context when a
// valid token is present and continues either way. It must run before the
// response cache so authenticated responses are never stored or replayed.
func OptionalAuth(db *gorm.DB, cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := ExtractToken(c); token != "" {
			if identity, err := ResolveIdentity(db, cfg, token); err == nil {
				c.Set(ContextKeyAdmin, identity)
			}
		}
		c.Next()
	}
}

// ResolveIdentity verifies a JWT and resolves the admin it names.
func ResolveIdentity(db *gorm.DB, cfg *config.AppConfig, token string) (*AdminIdentity, error) {
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, &authError{code: response.CodeInvalidToken, message: "invalid or expired token"}
	}
	if claims.AdminID == "" || claims.Email == "" {
		return nil, &authError{code: response.CodeInvalidPayload, message: "token payload incomplete"}
	}

	if claims.Source == jwt.SourceEnvironment {
		if !cfg.HasEnvAdmin() || !strings.EqualFold(claims.Email, cfg.EnvAdmin.Email) {
			return nil, &authError{code: response.CodeInvalidEnvAdmin, message: "environment admin no longer valid"}
		}
		return &AdminIdentity{
			ID:     claims.AdminID,
			Email:  cfg.EnvAdmin.Email,
			Name:   cfg.EnvAdmin.Name,
			Source: jwt.SourceEnvironment,
		}, nil
	}

	var admin models.AdminModel
	err = db.Where("id = ?", claims.AdminID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &authError{code: response.CodeAdminNotFound, message: "admin account not found"}
	}
	if err != nil {
		return nil, err
	}
	if admin.Status != models.AdminStatusActive {
		return nil, &authError{code: response.CodeAccountInactive, message: "admin account is disabled"}
	}

	return &AdminIdentity{
		ID:     admin.ID,
		Email:  admin.Email,
		Name:   admin.Name,
		Source: jwt.SourceDatabase,
	}, nil
}

// CurrentAdmin extracts the authenticated admin identity from context.
func CurrentAdmin(c *gin.Context) *AdminIdentity {
	v, _ := c.Get(ContextKeyAdmin)
	identity, _ := v.(*AdminIdentity)
	return identity
}

// ExtractToken reads the token from the Authorization header, falling
// back to the login cookie.
func ExtractToken(c *gin.Context) string {
	if token := NormalizeToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	cookie, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return NormalizeToken(cookie)
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
