package remote

import (
	"encoding/json"
	"strings"
)

const MaxBulkMedia = 50

type Media struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	FileSize     int64   `json:"fileSize,omitempty"`
}

// MediaInput is the payload for creating or patching a media item.
type MediaInput struct {
	Type         string  `json:"type"`
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	FileSize     int64   `json:"fileSize,omitempty"`
}

type Category struct {
	ID            string `json:"id"`
	CategoryName  string `json:"categoryName"`
	ServicesCount int    `json:"servicesCount"`
}

type Profile struct {
	FullName       string `json:"fullName,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type User struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Phone   string   `json:"phone,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

// IsAdmin reports whether the backend role is an administrator role.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	role := strings.ToUpper(u.Role)
	return role == "ADMIN" || role == "SUPER_ADMIN"
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Page is a list response. Items are passed through untouched.
type Page struct {
	Data       json.RawMessage `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type ProfileUpdate struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type Broadcast struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	TargetRole string `json:"targetRole"`
}

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}
