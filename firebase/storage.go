package firebase

import (
	"context"
	"io"
)

// StorageClient abstracts Firebase Storage operations for dependency injection and testing.
type StorageClient interface {
	UploadPromotionVideo(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
	DeleteFile(ctx context.Context, objectPath string) error
	OwnedObjectPath(url string) (string, bool)
}

var _ StorageClient = (*Storage)(nil)
