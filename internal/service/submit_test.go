package service

import (
	"context"
	"errors"
	"testing"

	"github.com/timhorst/horsthomes/internal/store"
	"github.com/timhorst/horsthomes/internal/testutil"
)

func TestSubmitBlogPostWhileDraftInFlight(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	svc := NewContentService(db, NewEventService(db), nil)
	q := store.New(db)
	ctx := context.Background()

	input := map[string]any{
		"title":     "Choosing replacement windows",
		"content":   "A long discussion of frame materials and glazing options.",
		"category":  "tips",
		"author":    "Tim Horst",
		"read_time": "5 min",
	}
	const imageURL = "http://localhost:8080/uploads/blog-images/1-a.jpg"

	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "horst@admin.timhorst.com", Name: "Tim", PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Hold the draft as if a first submission were still running.
	if !svc.guard.Begin("draft-1:blog") {
		t.Fatal("guard should be free initially")
	}

	_, errs, err := svc.SubmitBlogPost(ctx, user.ID, "draft-1:blog", input, nil, imageURL)
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("err = %v, want ErrSubmissionInFlight", err)
	}
	if len(errs) != 0 {
		t.Errorf("in-flight rejection carried field errors: %v", errs)
	}

	// The rejected re-submission is a no-op: nothing was persisted.
	posts, err := q.ListBlogPosts(ctx)
	if err != nil {
		t.Fatalf("ListBlogPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("posts = %d, want 0", len(posts))
	}

	// Once the first submission settles, the draft is submittable again.
	svc.guard.End("draft-1:blog")

	_, errs, err = svc.SubmitBlogPost(ctx, user.ID, "draft-1:blog", input, nil, imageURL)
	if err != nil || len(errs) != 0 {
		t.Fatalf("submit after release: err=%v errs=%v", err, errs)
	}
	posts, err = q.ListBlogPosts(ctx)
	if err != nil {
		t.Fatalf("ListBlogPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("posts = %d, want exactly one insert", len(posts))
	}
}
