package newsletter

// SubscribeDTO is the public signup payload.
type SubscribeDTO struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

// UnsubscribeDTO is the public opt-out payload.
type UnsubscribeDTO struct {
	Email string `json:"email" binding:"required"`
}

// Stats summarizes the subscriber base.
type Stats struct {
	TotalSubscribers  int64 `json:"totalSubscribers"`
	TotalUnsubscribed int64 `json:"totalUnsubscribed"`
	RecentSubscribers int64 `json:"recentSubscribers"`
	TotalEmails       int64 `json:"totalEmails"`
}
