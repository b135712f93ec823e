// Package scheduler runs the periodic orphaned-upload sweep: stored objects
// no content record references anymore are removed from the object store.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/timhorst/horsthomes/internal/storage"
	"github.com/timhorst/horsthomes/internal/store"
)

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	db      *sql.DB
	objects storage.ObjectStore
	cron    *cron.Cron
	logger  *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, objects storage.ObjectStore, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:      db,
		objects: objects,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the orphan sweep on the given cron schedule and starts
// the scheduler.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.SweepOrphanedUploads(context.Background()); err != nil {
			s.logger.Error("orphaned upload sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepOrphanedUploads deletes stored objects that no record references.
// Each bucket is compared against the image URLs of its surface's table.
func (s *Scheduler) SweepOrphanedUploads(ctx context.Context) error {
	queries := store.New(s.db)

	buckets := []struct {
		name string
		urls func(context.Context) ([]string, error)
	}{
		{storage.BucketBlogImages, queries.ListBlogImageURLs},
		{storage.BucketPortfolioImages, queries.ListPortfolioImageURLs},
		{storage.BucketProductImages, queries.ListProductImageURLs},
	}

	for _, b := range buckets {
		urls, err := b.urls(ctx)
		if err != nil {
			return err
		}

		referenced := make(map[string]struct{}, len(urls))
		for _, u := range urls {
			// Records store full public URLs; objects list by name.
			if idx := strings.LastIndex(u, "/"); idx != -1 {
				u = u[idx+1:]
			}
			referenced[u] = struct{}{}
		}

		objects, err := s.objects.List(ctx, b.name)
		if err != nil {
			return err
		}

		var removed int
		for _, name := range objects {
			if _, ok := referenced[name]; ok {
				continue
			}
			if err := s.objects.Delete(ctx, b.name, name); err != nil {
				s.logger.Error("failed to delete orphaned upload",
					"bucket", b.name, "object", name, "error", err)
				continue
			}
			removed++
		}

		if removed > 0 {
			s.logger.Info("removed orphaned uploads", "bucket", b.name, "count", removed)
		}
	}

	return nil
}
