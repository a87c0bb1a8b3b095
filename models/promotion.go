package models

import "time"

const (
	PromotionMediaType       = "VIDEO"
	DefaultPromotionCategory = "Promotion"
)

// PromotionRecord is one entry of the admin_promotions slot. The JSON layout is
// the persisted format and must stay stable across releases.
type PromotionRecord struct {
	ID          string     `json:"id"`
	MediaID     *string    `json:"mediaId"`
	Title       string     `json:"title"`
	VideoURL    string     `json:"videoUrl"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Synced reports whether the record has a remote media counterpart.
func (p PromotionRecord) Synced() bool {
	return p.MediaID != nil && *p.MediaID != ""
}

// SyncLabel is the badge shown next to a promotion in the admin UI.
func (p PromotionRecord) SyncLabel() string {
	if p.Synced() {
		return "Synced"
	}
	return "Local"
}

// PromotionInput carries the user-supplied fields of the add and edit forms.
// URL is accepted as an alias of VideoURL.
type PromotionInput struct {
	Title       string
	VideoURL    string
	URL         string
	StartDate   string
	EndDate     string
	Description string
	Category    string
	Location    string
}

// VideoSource returns VideoURL, falling back to URL.
func (in PromotionInput) VideoSource() string {
	if in.VideoURL != "" {
		return in.VideoURL
	}
	return in.URL
}
