package promotions

import (
	"time"

	"admin-console/models"
	"admin-console/remote"
)

// ToMediaInput maps form fields to the remote media payload. Dates stay local.
func ToMediaInput(in models.PromotionInput) remote.MediaInput {
	category := in.Category
	if category == "" {
		category = models.DefaultPromotionCategory
	}
	return remote.MediaInput{
		Type:        models.PromotionMediaType,
		URL:         in.VideoSource(),
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Location:    in.Location,
	}
}

// RemoteFields is the subset of a promotion that the media API knows about.
type RemoteFields struct {
	MediaID     string
	Title       string
	VideoURL    string
	Description string
	Category    string
	Type        string
}

// FromMedia maps a remote media item back to local field names.
func FromMedia(m remote.Media) RemoteFields {
	f := RemoteFields{
		MediaID:     m.ID,
		Title:       m.Title,
		VideoURL:    m.URL,
		Description: m.Description,
		Category:    m.Category,
		Type:        m.Type,
	}
	if f.Category == "" {
		f.Category = models.DefaultPromotionCategory
	}
	if f.Type == "" {
		f.Type = models.PromotionMediaType
	}
	return f
}

// Overlay returns rec with the remote fields applied. Remote wins for every
// field it carries; an empty title, url or id never blanks the local value.
func Overlay(rec models.PromotionRecord, f RemoteFields) models.PromotionRecord {
	if f.MediaID != "" {
		id := f.MediaID
		rec.MediaID = &id
	}
	if f.Title != "" {
		rec.Title = f.Title
	}
	if f.VideoURL != "" {
		rec.VideoURL = f.VideoURL
	}
	rec.Description = f.Description
	rec.Category = f.Category
	rec.Type = f.Type
	return rec
}

func newRecord(id string, in models.PromotionInput, now time.Time) models.PromotionRecord {
	rec := models.PromotionRecord{
		ID:        id,
		Type:      models.PromotionMediaType,
		CreatedAt: now,
	}
	return applyInput(rec, in)
}

// applyInput replaces the user-editable fields. id, mediaId, type and
// createdAt are left alone.
func applyInput(rec models.PromotionRecord, in models.PromotionInput) models.PromotionRecord {
	rec.Title = in.Title
	rec.VideoURL = in.VideoSource()
	rec.StartDate = in.StartDate
	rec.EndDate = in.EndDate
	rec.Description = in.Description
	rec.Category = in.Category
	if rec.Category == "" {
		rec.Category = models.DefaultPromotionCategory
	}
	rec.Location = in.Location
	return rec
}
