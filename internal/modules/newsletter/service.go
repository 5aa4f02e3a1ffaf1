package newsletter

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/pagination"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	// ErrInvalidEmail rejects malformed addresses.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrAlreadySubscribed is returned for duplicate active signups.
	ErrAlreadySubscribed = errors.New("email already subscribed")
	// ErrNotSubscribed is returned when unsubscribing an unknown address.
	ErrNotSubscribed = errors.New("email is not subscribed")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ValidEmail reports whether raw looks like an email address.
func ValidEmail(raw string) bool {
	return emailRe.MatchString(raw)
}

// Subscribe adds an address, reactivating it when it was previously
// unsubscribed. Duplicate active signups are rejected.
func (s *Service) Subscribe(dto *SubscribeDTO) (*models.NewsletterSubscriberModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	var existing models.NewsletterSubscriberModel
	err := s.db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Subscribed {
			return nil, ErrAlreadySubscribed
		}
		now := time.Now()
		updates := map[string]interface{}{
			"subscribed":      true,
			"subscribed_at":   now,
			"unsubscribed_at": nil,
		}
		if name := strings.TrimSpace(dto.Name); name != "" {
			updates["name"] = name
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.Subscribed = true
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := models.NewsletterSubscriberModel{
			Email:        email,
			Name:         strings.TrimSpace(dto.Name),
			Subscribed:   true,
			SubscribedAt: time.Now(),
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, err
		}
		return &sub, nil

	default:
		return nil, err
	}
}

// Unsubscribe flips the subscribed flag; the row is kept for stats.
func (s *Service) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()
	res := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("email = ? AND subscribed = ?", email, true).
		Updates(map[string]interface{}{
			"subscribed":      false,
			"unsubscribed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

// Subscribers pages active subscribers newest-first.
func (s *Service) Subscribers(q pagination.Query) ([]models.NewsletterSubscriberModel, response.Pagination, error) {
	tx := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("subscribed = ?", true).
		Order("subscribed_at DESC")

	var items []models.NewsletterSubscriberModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// Stats summarizes the subscriber base, counting signups in the trailing
// 30 days as recent.
func (s *Service) Stats() (*Stats, error) {
	var out Stats

	if err := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("subscribed = ?", true).Count(&out.TotalSubscribers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("subscribed = ?", false).Count(&out.TotalUnsubscribed).Error; err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if err := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("subscribed = ? AND subscribed_at >= ?", true, thirtyDaysAgo).
		Count(&out.RecentSubscribers).Error; err != nil {
		return nil, err
	}

	out.TotalEmails = out.TotalSubscribers + out.TotalUnsubscribed
	return &out, nil
}
