package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/timhorst/horsthomes/internal/imaging"
	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/storage"
)

// Surface describes one authoring surface's image requirements: the bucket
// uploads land in and the size ceiling enforced before any storage call.
type Surface struct {
	Name    string
	Bucket  string
	MaxSize int64
}

// Authoring surfaces. The blog ceiling is intentionally lower than the
// portfolio and product ceilings.
var (
	SurfaceBlog      = Surface{Name: "blog", Bucket: storage.BucketBlogImages, MaxSize: model.MaxBlogImageSize}
	SurfacePortfolio = Surface{Name: "portfolio", Bucket: storage.BucketPortfolioImages, MaxSize: model.MaxPortfolioImageSize}
	SurfaceProduct   = Surface{Name: "product", Bucket: storage.BucketProductImages, MaxSize: model.MaxProductImageSize}
)

// SurfaceByName resolves a surface by its route name.
func SurfaceByName(name string) (Surface, bool) {
	switch name {
	case SurfaceBlog.Name:
		return SurfaceBlog, true
	case SurfacePortfolio.Name:
		return SurfacePortfolio, true
	case SurfaceProduct.Name:
		return SurfaceProduct, true
	}
	return Surface{}, false
}

// stagedFile holds the raw bytes of a selected file between the stage and
// crop steps.
type stagedFile struct {
	name string
	data []byte
}

// draftImages is the per-draft image state: the field state machine plus the
// staged bytes awaiting crop.
type draftImages struct {
	pending *imaging.PendingSet
	staged  map[string]*stagedFile
}

// ImageService coordinates the image acquisition pipeline for every open
// draft: gate on selection, crop to the chosen rectangle, upload, and track
// per-field state so independent fields never cross-contaminate.
type ImageService struct {
	store storage.ObjectStore

	mu     sync.Mutex
	drafts map[string]*draftImages
}

// NewImageService creates an ImageService backed by the given object store.
func NewImageService(store storage.ObjectStore) *ImageService {
	return &ImageService{
		store:  store,
		drafts: make(map[string]*draftImages),
	}
}

func (s *ImageService) draft(key string) *draftImages {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[key]
	if !ok {
		d = &draftImages{
			pending: imaging.NewPendingSet(),
			staged:  make(map[string]*stagedFile),
		}
		s.drafts[key] = d
	}
	return d
}

// Stage validates a newly selected file against the surface's gates and, on
// success, stages it for cropping. A rejected file never reaches the crop
// step or storage.
func (s *ImageService) Stage(draftKey, field string, surface Surface, filename string, data []byte) error {
	if _, err := imaging.Gate(data, surface.MaxSize); err != nil {
		return err
	}

	d := s.draft(draftKey)
	d.pending.Select(field)
	if err := d.pending.BeginCrop(field); err != nil {
		return err
	}
	d.staged[field] = &stagedFile{name: filename, data: data}
	return nil
}

// Finish crops the staged file to the selected rectangle, uploads the
// result, and resolves the field to its public URL. On upload failure the
// field is marked failed and keeps no partial URL.
func (s *ImageService) Finish(ctx context.Context, draftKey, field string, surface Surface, rect imaging.Rect) (string, error) {
	d := s.draft(draftKey)

	staged, ok := d.staged[field]
	if !ok {
		return "", fmt.Errorf("no staged file for field %q", field)
	}

	cropped, err := imaging.Crop(staged.data, rect)
	if err != nil {
		d.pending.Fail(field, err.Error())
		delete(d.staged, field)
		return "", err
	}

	if err := d.pending.BeginUpload(field); err != nil {
		return "", err
	}

	objectName := storage.GenerateObjectName(staged.name)
	key, err := s.store.Upload(ctx, surface.Bucket, objectName, cropped, model.MimeTypeJPEG)
	if err != nil {
		d.pending.Fail(field, "upload failed, please try again")
		delete(d.staged, field)
		slog.Error("image upload failed", "error", err, "bucket", surface.Bucket, "field", field)
		return "", fmt.Errorf("uploading image: %w", err)
	}

	url := s.store.PublicURL(surface.Bucket, key)
	d.pending.Resolve(field, url)
	delete(d.staged, field)

	slog.Info("image uploaded", "bucket", surface.Bucket, "object", key, "field", field)
	return url, nil
}

// Cancel discards the staged file and crop state for a field without
// uploading anything.
func (s *ImageService) Cancel(draftKey, field string) {
	d := s.draft(draftKey)
	d.pending.CancelCrop(field)
	delete(d.staged, field)
}

// State reports the pending state of one field.
func (s *ImageService) State(draftKey, field string) imaging.PendingImage {
	return s.draft(draftKey).pending.Get(field)
}

// ResolvedURL returns the public URL of a resolved field, or "" if the field
// has not resolved.
func (s *ImageService) ResolvedURL(draftKey, field string) string {
	p := s.draft(draftKey).pending.Get(field)
	if p.State != imaging.StateResolved {
		return ""
	}
	return p.URL
}

// Discard drops all image state for a draft. Called after a successful
// submission or when the draft is abandoned.
func (s *ImageService) Discard(draftKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey)
}
