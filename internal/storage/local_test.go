package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreUploadAndList(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "http://localhost:8080/")
	ctx := context.Background()

	name, err := s.Upload(ctx, BucketBlogImages, "123-photo.jpg", []byte("jpeg bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if name != "123-photo.jpg" {
		t.Errorf("stored name = %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, BucketBlogImages, "123-photo.jpg"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("stored content = %q", data)
	}

	names, err := s.List(ctx, BucketBlogImages)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "123-photo.jpg" {
		t.Errorf("List = %v", names)
	}
}

func TestLocalStorePublicURL(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "http://localhost:8080/")
	got := s.PublicURL(BucketProductImages, "123-item.jpg")
	want := "http://localhost:8080/uploads/product-images/123-item.jpg"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

func TestLocalStoreDeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "http://localhost:8080")
	ctx := context.Background()

	if _, err := s.Upload(ctx, BucketBlogImages, "a.jpg", []byte("x"), "image/jpeg"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := s.Delete(ctx, BucketBlogImages, "a.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting again is not an error.
	if err := s.Delete(ctx, BucketBlogImages, "a.jpg"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalStoreListMissingBucket(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "http://localhost:8080")
	names, err := s.List(context.Background(), "never-created")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "http://localhost:8080")

	for _, name := range []string{"..", ".", ""} {
		if _, err := s.Upload(context.Background(), BucketBlogImages, name, []byte("x"), "image/jpeg"); err == nil {
			t.Errorf("Upload(%q) should fail", name)
		}
	}

	// Path components are stripped; the write stays inside the bucket.
	if _, err := s.Upload(context.Background(), BucketBlogImages, "../../escape.jpg", []byte("x"), "image/jpeg"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, BucketBlogImages, "escape.jpg")); err != nil {
		t.Errorf("expected file inside bucket: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.jpg")); err == nil {
		t.Error("file escaped the bucket directory")
	}
}

func TestGenerateObjectName(t *testing.T) {
	got := GenerateObjectName("My Photo.JPG")
	if !strings.HasSuffix(got, "-my-photo.jpg") {
		t.Errorf("GenerateObjectName = %q, want timestamp + -my-photo.jpg", got)
	}
	// Prefix must be a numeric timestamp.
	prefix := strings.SplitN(got, "-", 2)[0]
	if prefix == "" || strings.Trim(prefix, "0123456789") != "" {
		t.Errorf("prefix %q is not numeric", prefix)
	}
}
