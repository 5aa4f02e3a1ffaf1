package homepage

import "github.com/foxbeep/site-core/internal/models"

// UpdateDTO is the admin homepage settings payload.
type UpdateDTO struct {
	Hero       models.HeroSection       `json:"hero"`
	About      models.AboutSection      `json:"about"`
	Newsletter models.NewsletterSection `json:"newsletter"`
}

// DeleteImageDTO removes a CDN image reference from the active document.
type DeleteImageDTO struct {
	PublicID string `json:"publicId" binding:"required"`
}
