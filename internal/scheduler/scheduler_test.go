package scheduler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timhorst/horsthomes/internal/scheduler"
	"github.com/timhorst/horsthomes/internal/storage"
	"github.com/timhorst/horsthomes/internal/store"
	"github.com/timhorst/horsthomes/internal/testutil"
)

func TestSweepOrphanedUploads(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	objects := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	q := store.New(db)
	ctx := context.Background()

	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "horst@admin.timhorst.com", Name: "Tim", PasswordHash: "x",
	})
	require.NoError(t, err)

	// One referenced object, one orphan, per the blog bucket.
	_, err = objects.Upload(ctx, storage.BucketBlogImages, "1-keep.jpg", []byte("keep"), "image/jpeg")
	require.NoError(t, err)
	_, err = objects.Upload(ctx, storage.BucketBlogImages, "2-orphan.jpg", []byte("orphan"), "image/jpeg")
	require.NoError(t, err)

	_, err = q.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title:    "Kept post",
		Content:  "Content.",
		Category: "tips", Author: "Tim", ReadTime: "1 min",
		ImageURL:  objects.PublicURL(storage.BucketBlogImages, "1-keep.jpg"),
		CreatedBy: user.ID,
	})
	require.NoError(t, err)

	// Portfolio records reference both their before and after objects.
	for _, name := range []string{"3-before.jpg", "3-after.jpg", "4-stale.jpg"} {
		_, err = objects.Upload(ctx, storage.BucketPortfolioImages, name, []byte("x"), "image/jpeg")
		require.NoError(t, err)
	}
	_, err = q.CreatePortfolioProject(ctx, store.CreatePortfolioProjectParams{
		Title:          "Kept project",
		Description:    "Desc.",
		Category:       "windows",
		Location:       "Madison, WI",
		Date:           "2025-06",
		Status:         "Completed",
		BeforeImageURL: objects.PublicURL(storage.BucketPortfolioImages, "3-before.jpg"),
		AfterImageURL:  objects.PublicURL(storage.BucketPortfolioImages, "3-after.jpg"),
		CreatedBy:      user.ID,
	})
	require.NoError(t, err)

	s := scheduler.New(db, objects, testutil.TestLogger())
	require.NoError(t, s.SweepOrphanedUploads(ctx))

	blog, err := objects.List(ctx, storage.BucketBlogImages)
	require.NoError(t, err)
	assert.Equal(t, []string{"1-keep.jpg"}, blog)

	portfolio, err := objects.List(ctx, storage.BucketPortfolioImages)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"3-before.jpg", "3-after.jpg"}, portfolio)
}

func TestSweepEmptyStore(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	objects := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")

	s := scheduler.New(db, objects, testutil.TestLogger())
	require.NoError(t, s.SweepOrphanedUploads(context.Background()))
}
