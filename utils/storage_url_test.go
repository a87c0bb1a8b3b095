package utils

import "testing"

func TestExtractObjectPathValid(t *testing.T) {
	path, err := ExtractObjectPath("https://storage.googleapis.com/my-bucket/promotions/1700000000_spring.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if path != "promotions/1700000000_spring.mp4" {
		t.Errorf("expected 'promotions/1700000000_spring.mp4', got '%s'", path)
	}
}

func TestExtractObjectPathInvalidPrefix(t *testing.T) {
	if _, err := ExtractObjectPath("https://example.com/my-bucket/promotions/a.mp4"); err == nil {
		t.Fatal("expected error for invalid prefix")
	}
}

func TestExtractObjectPathNoBucketSeparator(t *testing.T) {
	if _, err := ExtractObjectPath("https://storage.googleapis.com/nobucket"); err == nil {
		t.Fatal("expected error for no bucket separator")
	}
}

func TestPublicObjectURLRoundTrip(t *testing.T) {
	url := PublicObjectURL("my-bucket", "promotions/a.mp4")
	path, ok := ObjectPathInBucket(url, "my-bucket")
	if !ok || path != "promotions/a.mp4" {
		t.Errorf("expected round trip to 'promotions/a.mp4', got %q (%v)", path, ok)
	}
}

func TestObjectPathInBucketOtherBucket(t *testing.T) {
	if _, ok := ObjectPathInBucket("https://storage.googleapis.com/other/promotions/a.mp4", "my-bucket"); ok {
		t.Error("objects from another bucket must not match")
	}
	if _, ok := ObjectPathInBucket("https://cdn.example.com/a.mp4", "my-bucket"); ok {
		t.Error("external URLs must not match")
	}
	if _, ok := ObjectPathInBucket("https://storage.googleapis.com/my-bucket/a.mp4", ""); ok {
		t.Error("an empty bucket never matches")
	}
}
