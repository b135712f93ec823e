package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/timhorst/horsthomes/internal/model"
)

// encodeJPEG produces a real JPEG of the given dimensions.
func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestGateAcceptsImageTypes(t *testing.T) {
	data := encodeJPEG(t, 40, 30)
	mimeType, err := Gate(data, model.MaxBlogImageSize)
	if err != nil {
		t.Fatalf("Gate: %v", err)
	}
	if mimeType != model.MimeTypeJPEG {
		t.Errorf("mime type = %q, want %q", mimeType, model.MimeTypeJPEG)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	if _, err := Gate(buf.Bytes(), model.MaxBlogImageSize); err != nil {
		t.Errorf("Gate rejected PNG: %v", err)
	}
}

func TestGateRejectsNonImage(t *testing.T) {
	// A PDF renamed to .jpg is still a PDF: the type is sniffed from bytes.
	data := []byte("%PDF-1.4 not really an image")
	_, err := Gate(data, model.MaxBlogImageSize)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("err = %v, want ErrInvalidFileType", err)
	}

	_, err = Gate([]byte("<html><body>hi</body></html>"), model.MaxBlogImageSize)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("err = %v, want ErrInvalidFileType", err)
	}
}

func TestGateRejectsOversizedFile(t *testing.T) {
	// A valid JPEG over the surface ceiling is rejected before any upload.
	data := encodeJPEG(t, 200, 150)
	_, err := Gate(data, int64(len(data))-1)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}

	// The same bytes pass under a higher ceiling.
	if _, err := Gate(data, int64(len(data))); err != nil {
		t.Errorf("Gate at exact ceiling: %v", err)
	}
}

func TestGateTypeCheckedBeforeSize(t *testing.T) {
	// An oversized non-image reports the type failure, not the size one.
	data := bytes.Repeat([]byte("x"), 1024)
	_, err := Gate(data, 10)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("err = %v, want ErrInvalidFileType", err)
	}
}

func TestCrop(t *testing.T) {
	data := encodeJPEG(t, 400, 300)

	out, err := Crop(data, Rect{X: 40, Y: 30, Width: 200, Height: 150})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding crop output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("crop output = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestCropClampsToBounds(t *testing.T) {
	data := encodeJPEG(t, 100, 75)

	// Rectangle extends past the right and bottom edges.
	out, err := Crop(data, Rect{X: 60, Y: 50, Width: 200, Height: 150})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding crop output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 40 || b.Dy() != 25 {
		t.Errorf("clamped crop = %dx%d, want 40x25", b.Dx(), b.Dy())
	}
}

func TestCropInvalidRect(t *testing.T) {
	data := encodeJPEG(t, 100, 75)

	if _, err := Crop(data, Rect{Width: 0, Height: 50}); err == nil {
		t.Error("zero-width rect should fail")
	}
	if _, err := Crop(data, Rect{X: -500, Y: -500, Width: 40, Height: 30}); err == nil {
		t.Error("rect fully outside bounds should fail")
	}
}

func TestCropEnforcesAspect(t *testing.T) {
	data := encodeJPEG(t, 400, 300)

	// The crop selection holds the fixed 4:3 aspect; anything else is
	// rejected before decoding.
	for _, r := range []Rect{
		{Width: 100, Height: 100},
		{Width: 100, Height: 80},
		{Width: 300, Height: 400},
	} {
		if _, err := Crop(data, r); err == nil {
			t.Errorf("Crop(%dx%d) should fail, not 4:3", r.Width, r.Height)
		}
	}

	// One pixel of rounding slack is allowed.
	for _, r := range []Rect{
		{Width: 400, Height: 300},
		{Width: 201, Height: 151},
		{Width: 4, Height: 3},
	} {
		if _, err := Crop(data, r); err != nil {
			t.Errorf("Crop(%dx%d): %v", r.Width, r.Height, err)
		}
	}
}

func TestDetectMimeType(t *testing.T) {
	if got := DetectMimeType(encodeJPEG(t, 10, 10)); got != model.MimeTypeJPEG {
		t.Errorf("DetectMimeType = %q, want %q", got, model.MimeTypeJPEG)
	}
	if got := DetectMimeType([]byte("plain text")); got == model.MimeTypeJPEG {
		t.Error("plain text detected as JPEG")
	}
}
