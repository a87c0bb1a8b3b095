package utils

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxVideoUploadSize is the largest promotion video accepted (50MB).
const MaxVideoUploadSize = 50 << 20

// DateLayout is the calendar date format used for promotion start/end dates.
const DateLayout = "2006-01-02"

// ValidateVideoUpload checks that the uploaded file is a video and does not
// exceed MaxVideoUploadSize.
func ValidateVideoUpload(fh *multipart.FileHeader) error {
	if fh.Size > MaxVideoUploadSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of 50MB", fh.Size)
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		return fmt.Errorf("invalid file type '%s'; please select a video file", contentType)
	}

	return nil
}

// ValidateDateRange parses both dates and rejects an end before the start.
func ValidateDateRange(start, end string) error {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return fmt.Errorf("startdate must be a date in YYYY-MM-DD format")
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return fmt.Errorf("enddate must be a date in YYYY-MM-DD format")
	}
	if e.Before(s) {
		return fmt.Errorf("enddate must not be before startdate")
	}
	return nil
}

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request body"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "eqfield":
			messages = append(messages, fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param())))
		case "datetime":
			messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}
