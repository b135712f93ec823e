package store

import (
	"context"
	"time"

	"github.com/timhorst/horsthomes/internal/model"
)

// CreateBlogPostParams holds the fields for a new blog post. The id,
// published_at, and created_at values are assigned by the store.
type CreateBlogPostParams struct {
	Title     string
	Content   string
	Excerpt   string
	Category  string
	Author    string
	ReadTime  string
	ImageURL  string
	Tags      []string
	CreatedBy int64
}

// CreateBlogPost inserts a blog post and returns it with its assigned id.
func (q *Queries) CreateBlogPost(ctx context.Context, p CreateBlogPostParams) (model.BlogPost, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO blog_posts (title, content, excerpt, category, author, read_time,
		                         image_url, tags, published_at, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Content, p.Excerpt, p.Category, p.Author, p.ReadTime,
		p.ImageURL, marshalJSON(p.Tags), now, p.CreatedBy, now)
	if err != nil {
		return model.BlogPost{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.BlogPost{}, err
	}
	return q.GetBlogPost(ctx, id)
}

// GetBlogPost returns the blog post with the given id.
func (q *Queries) GetBlogPost(ctx context.Context, id int64) (model.BlogPost, error) {
	var p model.BlogPost
	var tags string
	err := q.db.QueryRowContext(ctx,
		`SELECT id, title, content, excerpt, category, author, read_time,
		        image_url, tags, published_at, created_by, created_at
		 FROM blog_posts WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Category, &p.Author,
			&p.ReadTime, &p.ImageURL, &tags, &p.PublishedAt, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return model.BlogPost{}, err
	}
	p.Tags = unmarshalStrings(tags)
	return p, nil
}

// ListBlogPosts returns all blog posts, newest first by publish time.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, content, excerpt, category, author, read_time,
		        image_url, tags, published_at, created_by, created_at
		 FROM blog_posts ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.BlogPost
	for rows.Next() {
		var p model.BlogPost
		var tags string
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Category, &p.Author,
			&p.ReadTime, &p.ImageURL, &tags, &p.PublishedAt, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Tags = unmarshalStrings(tags)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DeleteBlogPost removes a blog post. Returns the number of rows deleted.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListBlogImageURLs returns every image URL referenced by a blog post.
// Used by the orphaned-upload sweep.
func (q *Queries) ListBlogImageURLs(ctx context.Context) ([]string, error) {
	return q.listURLs(ctx, `SELECT image_url FROM blog_posts`)
}

func (q *Queries) listURLs(ctx context.Context, query string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls, rows.Err()
}
