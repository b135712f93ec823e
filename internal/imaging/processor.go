// Package imaging implements the image acquisition pipeline: type and size
// gating, EXIF-aware decoding, and crop-to-rectangle processing. All gates
// run before any storage call.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/timhorst/horsthomes/internal/model"
)

// Gate failures. Both block the upload before any network call.
var (
	ErrInvalidFileType = errors.New("invalid file type: upload a JPEG, PNG, WebP, or GIF image")
	ErrFileTooLarge    = errors.New("file too large")
)

// Crop aspect ratio enforced by the authoring surfaces.
const (
	AspectW = 4
	AspectH = 3
)

// JPEG quality for crop output.
const cropQuality = 90

// Rect is a pixel rectangle selected during the crop step.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Gate validates a staged file before any processing or upload. The MIME
// type is sniffed from the bytes, never trusted from client headers.
// Returns the detected MIME type.
func Gate(data []byte, maxSize int64) (string, error) {
	mimeType := DetectMimeType(data)
	if !model.IsImageMimeType(mimeType) {
		return "", ErrInvalidFileType
	}
	if int64(len(data)) > maxSize {
		return "", fmt.Errorf("%w: image must be less than %dMB", ErrFileTooLarge, maxSize/(1024*1024))
	}
	return mimeType, nil
}

// DetectMimeType detects the MIME type of image data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns types like "image/jpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// Crop decodes the staged image, applies EXIF orientation, crops to the
// selected pixel rectangle (clamped to the image bounds), and encodes the
// result as JPEG. The rectangle must have positive dimensions and hold the
// 4:3 aspect within one pixel of rounding.
func Crop(data []byte, r Rect) ([]byte, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("invalid crop rectangle %dx%d", r.Width, r.Height)
	}
	if diff := r.Width*AspectH - r.Height*AspectW; diff < -AspectW || diff > AspectW {
		return nil, fmt.Errorf("crop rectangle %dx%d is not %d:%d", r.Width, r.Height, AspectW, AspectH)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	orientation := readExifOrientation(bytes.NewReader(data))
	img = applyOrientation(img, orientation)

	bounds := img.Bounds()
	sel := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(bounds)
	if sel.Empty() {
		return nil, fmt.Errorf("crop rectangle outside image bounds %dx%d", bounds.Dx(), bounds.Dy())
	}

	cropped := imaging.Crop(img, sel)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: cropQuality}); err != nil {
		return nil, fmt.Errorf("encoding crop output: %w", err)
	}
	return buf.Bytes(), nil
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
