package firebase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"admin-console/logger"
	"admin-console/utils"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const promotionFolder = "promotions"

var ErrStorageDisabled = errors.New("video storage is not configured")

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

func promotionObjectPath(now time.Time, filename string) string {
	return fmt.Sprintf("%s/%d_%s", promotionFolder, now.Unix(), sanitizeFilename(filename))
}

// ClientOptions turns GOOGLE_APPLICATION_CREDENTIALS into client options. The
// value is either inline JSON or a file path; empty means default credentials.
func ClientOptions(credentials string) []option.ClientOption {
	log := logger.GetGlobalLogger()
	switch {
	case credentials == "":
		log.Warnf("GOOGLE_APPLICATION_CREDENTIALS not set, using default credentials")
		return nil
	case strings.HasPrefix(strings.TrimSpace(credentials), "{"):
		log.Infof("Using Firebase credentials from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credentials))}
	default:
		log.Infof("Using Firebase credentials from file: %s", credentials)
		return []option.ClientOption{option.WithCredentialsFile(credentials)}
	}
}

// Storage uploads promotion videos to a Firebase Storage bucket.
type Storage struct {
	app    *firebase.App
	bucket string
	now    func() time.Time
}

// NewStorage initializes the Firebase app. An empty bucket returns
// ErrStorageDisabled so callers can run without uploads.
func NewStorage(ctx context.Context, bucket, credentials string) (*Storage, error) {
	if bucket == "" {
		return nil, ErrStorageDisabled
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucket}, ClientOptions(credentials)...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}
	logger.GetGlobalLogger().Infof("Firebase initialized successfully")
	return &Storage{app: app, bucket: bucket, now: time.Now}, nil
}

func (s *Storage) BucketName() string {
	return s.bucket
}

func (s *Storage) handle(ctx context.Context) (*storage.BucketHandle, error) {
	client, err := s.app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	return client.Bucket(s.bucket)
}

// UploadPromotionVideo writes the file under promotions/ with a public-read ACL
// and returns its public URL.
func (s *Storage) UploadPromotionVideo(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	bucket, err := s.handle(ctx)
	if err != nil {
		return "", err
	}

	objectPath := promotionObjectPath(s.now(), filename)
	obj := bucket.Object(objectPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", err
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %v", err)
	}

	// The admin UI and the media API link to the object directly.
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		logger.GetGlobalLogger().WithContext(ctx).Warn("failed to set public ACL",
			zap.String("object", objectPath), zap.Error(err))
	}

	return utils.PublicObjectURL(s.bucket, objectPath), nil
}

// DeleteFile deletes a file from Firebase Storage given its object path
func (s *Storage) DeleteFile(ctx context.Context, objectPath string) error {
	bucket, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if err := bucket.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %v", objectPath, err)
	}

	logger.GetGlobalLogger().WithContext(ctx).Info("deleted storage object",
		zap.String("object", objectPath), zap.String("bucket", s.bucket))
	return nil
}

// OwnedObjectPath returns the object path of url when it lives in our bucket.
func (s *Storage) OwnedObjectPath(url string) (string, bool) {
	return utils.ObjectPathInBucket(url, s.bucket)
}
