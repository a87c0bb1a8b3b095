package utils

import (
	"fmt"
	"strings"
)

const storagePublicPrefix = "https://storage.googleapis.com/"

// PublicObjectURL is the public URL of an object uploaded with a public-read ACL.
func PublicObjectURL(bucket, objectPath string) string {
	return storagePublicPrefix + bucket + "/" + objectPath
}

// ExtractObjectPath extracts storage object path from full Firebase URL
func ExtractObjectPath(url string) (string, error) {
	if !strings.HasPrefix(url, storagePublicPrefix) {
		return "", fmt.Errorf("invalid URL")
	}

	path := strings.TrimPrefix(url, storagePublicPrefix)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid URL format")
	}

	return parts[1], nil
}

// ObjectPathInBucket returns the object path when url points into bucket.
func ObjectPathInBucket(url, bucket string) (string, bool) {
	if bucket == "" || !strings.HasPrefix(url, storagePublicPrefix+bucket+"/") {
		return "", false
	}
	path, err := ExtractObjectPath(url)
	if err != nil {
		return "", false
	}
	return path, true
}
