package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"sync"
	"testing"

	"github.com/timhorst/horsthomes/internal/imaging"
	"github.com/timhorst/horsthomes/internal/service"
)

// fakeObjectStore is an in-memory ObjectStore for pipeline tests.
type fakeObjectStore struct {
	mu         sync.Mutex
	objects    map[string]map[string][]byte
	failUpload bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]map[string][]byte)}
}

func (f *fakeObjectStore) Upload(_ context.Context, bucket, name string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return "", errors.New("storage unavailable")
	}
	if f.objects[bucket] == nil {
		f.objects[bucket] = make(map[string][]byte)
	}
	f.objects[bucket][name] = data
	return name, nil
}

func (f *fakeObjectStore) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func (f *fakeObjectStore) Delete(_ context.Context, bucket, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects[bucket], path)
	return nil
}

func (f *fakeObjectStore) List(_ context.Context, bucket string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for name := range f.objects[bucket] {
		names = append(names, name)
	}
	return names, nil
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestImageServiceStageRejectsInvalidFile(t *testing.T) {
	svc := service.NewImageService(newFakeObjectStore())

	err := svc.Stage("d1:blog", "image", service.SurfaceBlog, "notes.pdf", []byte("%PDF-1.4 fake"))
	if !errors.Is(err, imaging.ErrInvalidFileType) {
		t.Fatalf("err = %v, want ErrInvalidFileType", err)
	}
	if got := svc.State("d1:blog", "image").State; got != imaging.StateEmpty {
		t.Errorf("state after rejection = %v, want empty", got)
	}
}

func TestImageServiceStageRejectsOversized(t *testing.T) {
	svc := service.NewImageService(newFakeObjectStore())
	data := testJPEG(t, 100, 75)

	tiny := service.Surface{Name: "blog", Bucket: "blog-images", MaxSize: int64(len(data)) - 1}
	err := svc.Stage("d1:blog", "image", tiny, "photo.jpg", data)
	if !errors.Is(err, imaging.ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestImageServiceStageAndFinish(t *testing.T) {
	store := newFakeObjectStore()
	svc := service.NewImageService(store)
	ctx := context.Background()
	data := testJPEG(t, 400, 300)

	if err := svc.Stage("d1:blog", "image", service.SurfaceBlog, "My Photo.jpg", data); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if got := svc.State("d1:blog", "image").State; got != imaging.StateCropping {
		t.Fatalf("state after Stage = %v, want cropping", got)
	}
	if url := svc.ResolvedURL("d1:blog", "image"); url != "" {
		t.Errorf("ResolvedURL before Finish = %q, want empty", url)
	}

	url, err := svc.Finish(ctx, "d1:blog", "image", service.SurfaceBlog, imaging.Rect{X: 0, Y: 0, Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.test/blog-images/") {
		t.Errorf("url = %q", url)
	}
	if !strings.HasSuffix(url, "-my-photo.jpg") {
		t.Errorf("url = %q, want generated name suffix", url)
	}

	if got := svc.State("d1:blog", "image").State; got != imaging.StateResolved {
		t.Errorf("state after Finish = %v, want resolved", got)
	}
	if got := svc.ResolvedURL("d1:blog", "image"); got != url {
		t.Errorf("ResolvedURL = %q, want %q", got, url)
	}

	names, _ := store.List(ctx, "blog-images")
	if len(names) != 1 {
		t.Errorf("stored objects = %v, want exactly one", names)
	}
}

func TestImageServiceFinishWithoutStage(t *testing.T) {
	svc := service.NewImageService(newFakeObjectStore())

	_, err := svc.Finish(context.Background(), "d1:blog", "image", service.SurfaceBlog, imaging.Rect{Width: 10, Height: 10})
	if err == nil {
		t.Fatal("Finish without a staged file should fail")
	}
}

func TestImageServiceUploadFailure(t *testing.T) {
	store := newFakeObjectStore()
	store.failUpload = true
	svc := service.NewImageService(store)
	data := testJPEG(t, 100, 75)

	if err := svc.Stage("d1:blog", "image", service.SurfaceBlog, "photo.jpg", data); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	_, err := svc.Finish(context.Background(), "d1:blog", "image", service.SurfaceBlog, imaging.Rect{Width: 40, Height: 30})
	if err == nil {
		t.Fatal("Finish should surface the upload failure")
	}

	p := svc.State("d1:blog", "image")
	if p.State != imaging.StateFailed {
		t.Errorf("state = %v, want failed", p.State)
	}
	if p.Reason == "" {
		t.Error("failed field should carry a reason")
	}
	if got := svc.ResolvedURL("d1:blog", "image"); got != "" {
		t.Errorf("ResolvedURL after failure = %q, want empty", got)
	}
}

func TestImageServiceCancel(t *testing.T) {
	svc := service.NewImageService(newFakeObjectStore())
	data := testJPEG(t, 100, 75)

	if err := svc.Stage("d1:blog", "image", service.SurfaceBlog, "photo.jpg", data); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	svc.Cancel("d1:blog", "image")

	if got := svc.State("d1:blog", "image").State; got != imaging.StateEmpty {
		t.Errorf("state after Cancel = %v, want empty", got)
	}
	if _, err := svc.Finish(context.Background(), "d1:blog", "image", service.SurfaceBlog, imaging.Rect{Width: 10, Height: 10}); err == nil {
		t.Error("Finish after Cancel should fail")
	}
}

func TestImageServiceDiscardDropsDraftState(t *testing.T) {
	svc := service.NewImageService(newFakeObjectStore())
	data := testJPEG(t, 200, 150)

	if err := svc.Stage("d1:blog", "image", service.SurfaceBlog, "photo.jpg", data); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := svc.Finish(context.Background(), "d1:blog", "image", service.SurfaceBlog, imaging.Rect{Width: 100, Height: 75}); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	svc.Discard("d1:blog")
	if got := svc.ResolvedURL("d1:blog", "image"); got != "" {
		t.Errorf("ResolvedURL after Discard = %q, want empty", got)
	}
}

func TestImageServiceDraftIsolation(t *testing.T) {
	svc := service.NewImageService(newFakeObjectStore())
	data := testJPEG(t, 100, 75)

	if err := svc.Stage("d1:blog", "image", service.SurfaceBlog, "a.jpg", data); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if got := svc.State("d2:blog", "image").State; got != imaging.StateEmpty {
		t.Errorf("other draft state = %v, want empty", got)
	}
}

func TestSurfaceByName(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		ok     bool
	}{
		{"blog", "blog-images", true},
		{"portfolio", "portfolio-images", true},
		{"product", "product-images", true},
		{"pages", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		surface, ok := service.SurfaceByName(tt.name)
		if ok != tt.ok {
			t.Errorf("SurfaceByName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && surface.Bucket != tt.bucket {
			t.Errorf("SurfaceByName(%q).Bucket = %q, want %q", tt.name, surface.Bucket, tt.bucket)
		}
	}
}
