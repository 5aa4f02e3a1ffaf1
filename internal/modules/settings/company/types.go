package company

import "github.com/foxbeep/site-core/internal/models"

// UpdateDTO is the admin company details payload. CompanyName is required.
type UpdateDTO struct {
	CompanyName     string             `json:"companyName"`
	Logo            string             `json:"logo"`
	LogoPublicID    string             `json:"logoPublicId"`
	Favicon         string             `json:"favicon"`
	FaviconPublicID string             `json:"faviconPublicId"`
	SocialLinks     models.SocialLinks `json:"socialLinks"`
}
