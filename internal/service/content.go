package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/timhorst/horsthomes/internal/cache"
	"github.com/timhorst/horsthomes/internal/form"
	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/store"
)

// Listing cache keys, one per surface.
const (
	cacheKeyBlog      = "list:blog"
	cacheKeyPortfolio = "list:portfolio"
	cacheKeyProducts  = "list:products"
)

// ContentService implements the record submitters and the listing surfaces.
// Submissions run their preconditions in order (draft not already in flight,
// all fields valid, required images resolved, actor authenticated) and issue
// exactly one insert when all of them hold.
type ContentService struct {
	queries *store.Queries
	guard   *form.DraftGuard
	events  *EventService
	cache   cache.Cache
}

// NewContentService creates a ContentService.
func NewContentService(db *sql.DB, events *EventService, c cache.Cache) *ContentService {
	return &ContentService{
		queries: store.New(db),
		guard:   form.NewDraftGuard(),
		events:  events,
		cache:   c,
	}
}

// SubmitBlogPost validates and persists a new blog post. The returned Errors
// carry per-field messages when validation fails; the error return carries
// precondition and persistence failures.
func (s *ContentService) SubmitBlogPost(ctx context.Context, actorID int64, draftKey string, input map[string]any, tags []string, imageURL string) (model.BlogPost, form.Errors, error) {
	if !s.guard.Begin(draftKey) {
		return model.BlogPost{}, nil, ErrSubmissionInFlight
	}
	defer s.guard.End(draftKey)

	values, errs := form.BlogPostSchema().Validate(input)
	if len(errs) > 0 {
		return model.BlogPost{}, errs, nil
	}
	if imageURL == "" {
		return model.BlogPost{}, nil, ErrUploadRequired
	}
	if actorID == 0 {
		return model.BlogPost{}, nil, ErrNotAuthenticated
	}

	content := values.String("content")
	excerpt := strings.TrimSpace(values.String("excerpt"))
	if excerpt == "" {
		excerpt = DeriveExcerpt(content)
	}

	post, err := s.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title:     values.String("title"),
		Content:   content,
		Excerpt:   excerpt,
		Category:  values.String("category"),
		Author:    values.String("author"),
		ReadTime:  values.String("read_time"),
		ImageURL:  imageURL,
		Tags:      model.DedupeTags(tags),
		CreatedBy: actorID,
	})
	if err != nil {
		return model.BlogPost{}, nil, fmt.Errorf("creating blog post: %w", err)
	}

	s.invalidate(ctx, cacheKeyBlog)
	s.logMutation(ctx, actorID, "blog post created", post.ID, post.Title)
	return post, nil, nil
}

// SubmitPortfolioProject validates and persists a new portfolio project.
// The after image must have resolved; the before image is optional.
func (s *ContentService) SubmitPortfolioProject(ctx context.Context, actorID int64, draftKey string, input map[string]any, details []string, beforeURL, afterURL string) (model.PortfolioProject, form.Errors, error) {
	if !s.guard.Begin(draftKey) {
		return model.PortfolioProject{}, nil, ErrSubmissionInFlight
	}
	defer s.guard.End(draftKey)

	values, errs := form.PortfolioProjectSchema().Validate(input)
	if len(errs) > 0 {
		return model.PortfolioProject{}, errs, nil
	}
	if afterURL == "" {
		return model.PortfolioProject{}, nil, ErrUploadRequired
	}
	if actorID == 0 {
		return model.PortfolioProject{}, nil, ErrNotAuthenticated
	}

	kept := make([]string, 0, len(details))
	for _, d := range details {
		if d = strings.TrimSpace(d); d != "" {
			kept = append(kept, d)
		}
	}

	project, err := s.queries.CreatePortfolioProject(ctx, store.CreatePortfolioProjectParams{
		Title:              values.String("title"),
		Description:        values.String("description"),
		Category:           values.String("category"),
		Location:           values.String("location"),
		Date:               values.String("date"),
		Status:             values.String("status"),
		Details:            kept,
		BeforeImageURL:     beforeURL,
		AfterImageURL:      afterURL,
		TestimonialContent: values.String("testimonial_content"),
		TestimonialAuthor:  values.String("testimonial_author"),
		TestimonialRole:    values.String("testimonial_role"),
		CreatedBy:          actorID,
	})
	if err != nil {
		return model.PortfolioProject{}, nil, fmt.Errorf("creating portfolio project: %w", err)
	}

	s.invalidate(ctx, cacheKeyPortfolio)
	s.logMutation(ctx, actorID, "portfolio project created", project.ID, project.Title)
	return project, nil, nil
}

// SubmitProduct validates and persists a new product. Variant rows are
// validated individually; errors are keyed "variants.<index>.<field>".
func (s *ContentService) SubmitProduct(ctx context.Context, actorID int64, draftKey string, input map[string]any, variants []map[string]any, tags []string, imageURL string) (model.Product, form.Errors, error) {
	if !s.guard.Begin(draftKey) {
		return model.Product{}, nil, ErrSubmissionInFlight
	}
	defer s.guard.End(draftKey)

	values, errs := form.ProductSchema().Validate(input)
	if errs == nil {
		errs = make(form.Errors)
	}

	parsed := make([]model.ProductVariant, 0, len(variants))
	for i, raw := range variants {
		vv, verrs := form.ProductVariantSchema().Validate(raw)
		if len(verrs) > 0 {
			for field, msg := range verrs {
				errs[fmt.Sprintf("variants.%d.%s", i, field)] = msg
			}
			continue
		}
		parsed = append(parsed, model.ProductVariant{
			Name:  vv.String("name"),
			Price: vv.Float("price"),
			Stock: vv.Int("stock"),
		})
	}

	if len(errs) > 0 {
		return model.Product{}, errs, nil
	}
	if imageURL == "" {
		return model.Product{}, nil, ErrUploadRequired
	}
	if actorID == 0 {
		return model.Product{}, nil, ErrNotAuthenticated
	}

	product, err := s.queries.CreateProduct(ctx, store.CreateProductParams{
		Title:       values.String("title"),
		Description: values.String("description"),
		Category:    values.String("category"),
		Price:       values.Float("price"),
		ImageURL:    imageURL,
		InStock:     values.Bool("in_stock"),
		Variants:    parsed,
		Tags:        model.DedupeTags(tags),
		CreatedBy:   actorID,
	})
	if err != nil {
		return model.Product{}, nil, fmt.Errorf("creating product: %w", err)
	}

	s.invalidate(ctx, cacheKeyProducts)
	s.logMutation(ctx, actorID, "product created", product.ID, product.Title)
	return product, nil, nil
}

// ListBlogPosts returns blog posts newest first, narrowed by the search
// query and category. Filtering runs in memory over the full fetched set.
// Rendered HTML is attached at read time.
func (s *ContentService) ListBlogPosts(ctx context.Context, query, category string) ([]model.BlogPost, error) {
	posts, err := listCached(ctx, s.cache, cacheKeyBlog, func() ([]model.BlogPost, error) {
		return s.queries.ListBlogPosts(ctx)
	})
	if err != nil {
		return nil, err
	}
	posts = FilterBlogPosts(posts, query, category)
	for i := range posts {
		posts[i].ContentHTML = RenderMarkdown(posts[i].Content)
	}
	return posts, nil
}

// ListPortfolioProjects returns portfolio projects newest first, narrowed by
// the search query and category.
func (s *ContentService) ListPortfolioProjects(ctx context.Context, query, category string) ([]model.PortfolioProject, error) {
	projects, err := listCached(ctx, s.cache, cacheKeyPortfolio, func() ([]model.PortfolioProject, error) {
		return s.queries.ListPortfolioProjects(ctx)
	})
	if err != nil {
		return nil, err
	}
	return FilterPortfolioProjects(projects, query, category), nil
}

// ListProducts returns products newest first, narrowed by the search query
// and category.
func (s *ContentService) ListProducts(ctx context.Context, query, category string) ([]model.Product, error) {
	products, err := listCached(ctx, s.cache, cacheKeyProducts, func() ([]model.Product, error) {
		return s.queries.ListProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, query, category), nil
}

// DeleteBlogPost removes a blog post. ErrNotFound if no such record. On
// failure the record is untouched; the caller surfaces the error and the
// listing is unchanged.
func (s *ContentService) DeleteBlogPost(ctx context.Context, actorID, id int64) error {
	n, err := s.queries.DeleteBlogPost(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting blog post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx, cacheKeyBlog)
	s.logMutation(ctx, actorID, "blog post deleted", id, "")
	return nil
}

// DeletePortfolioProject removes a portfolio project.
func (s *ContentService) DeletePortfolioProject(ctx context.Context, actorID, id int64) error {
	n, err := s.queries.DeletePortfolioProject(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting portfolio project: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx, cacheKeyPortfolio)
	s.logMutation(ctx, actorID, "portfolio project deleted", id, "")
	return nil
}

// DeleteProduct removes a product.
func (s *ContentService) DeleteProduct(ctx context.Context, actorID, id int64) error {
	n, err := s.queries.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx, cacheKeyProducts)
	s.logMutation(ctx, actorID, "product deleted", id, "")
	return nil
}

// FilterBlogPosts narrows posts to those whose title or content contains the
// query, case-insensitive, and whose category matches. An empty or "all"
// category matches everything.
func FilterBlogPosts(posts []model.BlogPost, query, category string) []model.BlogPost {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if !matchCategory(p.Category, category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Content), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterPortfolioProjects narrows projects by title or description substring
// and category.
func FilterPortfolioProjects(projects []model.PortfolioProject, query, category string) []model.PortfolioProject {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.PortfolioProject, 0, len(projects))
	for _, p := range projects {
		if !matchCategory(p.Category, category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterProducts narrows products by title or description substring and
// category.
func FilterProducts(products []model.Product, query, category string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p.Category, category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchCategory(have, want string) bool {
	return want == "" || want == "all" || have == want
}

// listCached fetches the full set through the cache. Cache failures fall
// through to the database.
func listCached[T any](ctx context.Context, c cache.Cache, key string, fetch func() ([]T, error)) ([]T, error) {
	if c != nil {
		if raw, ok := c.Get(ctx, key); ok {
			var items []T
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := fetch()
	if err != nil {
		return nil, err
	}

	if c != nil {
		if raw, err := json.Marshal(items); err == nil {
			c.Set(ctx, key, raw)
		}
	}
	return items, nil
}

func (s *ContentService) invalidate(ctx context.Context, key string) {
	if s.cache != nil {
		s.cache.Delete(ctx, key)
	}
}

func (s *ContentService) logMutation(ctx context.Context, actorID int64, message string, recordID int64, title string) {
	meta := map[string]any{"record_id": recordID}
	if title != "" {
		meta["title"] = title
	}
	if err := s.events.LogContentEvent(ctx, model.EventLevelInfo, message, &actorID, meta); err != nil {
		slog.Warn("content event not recorded", "message", message)
	}
}
