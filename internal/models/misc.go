package models

import "time"

// NewsletterSubscriberModel tracks newsletter signups. Unsubscribes flip the
// flag instead of deleting, so stats keep the full history.
type NewsletterSubscriberModel struct {
	Base
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Name           string     `json:"name"`
	Subscribed     bool       `json:"subscribed"   gorm:"index;default:true"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func (NewsletterSubscriberModel) TableName() string { return "newsletter_subscribers" }

// UploadedImageModel tracks CDN objects created through the upload endpoint,
// so replaced images can be cleaned up by public id.
type UploadedImageModel struct {
	Base
	URL        string `json:"url"      gorm:"not null"`
	PublicID   string `json:"publicId" gorm:"uniqueIndex;not null"`
	Folder     string `json:"folder"   gorm:"index"`
	Format     string `json:"format"`
	Bytes      int64  `json:"size"`
	UploadedBy string `json:"uploadedBy"`
}

func (UploadedImageModel) TableName() string { return "uploaded_images" }
