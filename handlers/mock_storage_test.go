package handlers

import (
	"context"
	"io"
	"strings"
)

const testBucket = "test-bucket"

type mockStorage struct {
	UploadPromotionVideoFn func(filename, contentType string, data []byte) (string, error)
	DeleteFileFn           func(objectPath string) error
	DeleteFileCalls        []string
	UploadCallCount        int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) UploadPromotionVideo(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	m.UploadCallCount++
	data, _ := io.ReadAll(file)
	if m.UploadPromotionVideoFn != nil {
		return m.UploadPromotionVideoFn(filename, contentType, data)
	}
	return "https://storage.googleapis.com/" + testBucket + "/promotions/1700000000_" + filename, nil
}

func (m *mockStorage) DeleteFile(ctx context.Context, objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}

func (m *mockStorage) OwnedObjectPath(url string) (string, bool) {
	prefix := "https://storage.googleapis.com/" + testBucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
