package model

// Supported image MIME types for content uploads.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// Upload size ceilings per authoring surface.
const (
	MaxBlogImageSize      = 4 * 1024 * 1024 // 4MB
	MaxPortfolioImageSize = 5 * 1024 * 1024 // 5MB
	MaxProductImageSize   = 5 * 1024 * 1024 // 5MB
)

// AllowedImageMimeTypes defines the MIME types accepted by the image
// acquisition pipeline. Anything else is rejected before upload.
var AllowedImageMimeTypes = map[string]bool{
	MimeTypeJPEG: true,
	MimeTypePNG:  true,
	MimeTypeGIF:  true,
	MimeTypeWebP: true,
}

// IsImageMimeType reports whether the MIME type is an accepted image type.
func IsImageMimeType(mimeType string) bool {
	return AllowedImageMimeTypes[mimeType]
}
