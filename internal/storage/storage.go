// Package storage defines the object storage port consumed by the image
// acquisition pipeline and its local-disk and S3 adapters. Objects are
// grouped into per-surface buckets and addressed by collision-resistant
// generated names.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/timhorst/horsthomes/internal/util"
)

// Buckets used by the authoring surfaces.
const (
	BucketBlogImages      = "blog-images"
	BucketPortfolioImages = "portfolio-images"
	BucketProductImages   = "product-images"
)

// ObjectStore is the object storage collaborator. Upload stores a blob under
// the given name and returns its storage path; PublicURL resolves a storage
// path to a publicly reachable URL.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
	Delete(ctx context.Context, bucket, path string) error
	List(ctx context.Context, bucket string) ([]string, error)
}

// GenerateObjectName builds a collision-resistant storage name from the
// original filename: millisecond timestamp prefix plus the sanitized name.
func GenerateObjectName(original string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), util.SanitizeUploadName(original))
}
