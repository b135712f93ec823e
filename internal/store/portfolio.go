package store

import (
	"context"
	"time"

	"github.com/timhorst/horsthomes/internal/model"
)

// CreatePortfolioProjectParams holds the fields for a new portfolio project.
type CreatePortfolioProjectParams struct {
	Title              string
	Description        string
	Category           string
	Location           string
	Date               string
	Status             string
	Details            []string
	BeforeImageURL     string
	AfterImageURL      string
	TestimonialContent string
	TestimonialAuthor  string
	TestimonialRole    string
	CreatedBy          int64
}

// CreatePortfolioProject inserts a project and returns it with its assigned id.
func (q *Queries) CreatePortfolioProject(ctx context.Context, p CreatePortfolioProjectParams) (model.PortfolioProject, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO portfolio_projects (title, description, category, location, date, status,
		                                 details, before_image_url, after_image_url,
		                                 testimonial_content, testimonial_author, testimonial_role,
		                                 created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Category, p.Location, p.Date, p.Status,
		marshalJSON(p.Details), p.BeforeImageURL, p.AfterImageURL,
		p.TestimonialContent, p.TestimonialAuthor, p.TestimonialRole,
		p.CreatedBy, time.Now().UTC())
	if err != nil {
		return model.PortfolioProject{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PortfolioProject{}, err
	}
	return q.GetPortfolioProject(ctx, id)
}

// GetPortfolioProject returns the project with the given id.
func (q *Queries) GetPortfolioProject(ctx context.Context, id int64) (model.PortfolioProject, error) {
	row := q.db.QueryRowContext(ctx, selectPortfolioProject+` WHERE id = ?`, id)
	return scanPortfolioProject(row)
}

// ListPortfolioProjects returns all projects, newest first.
func (q *Queries) ListPortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error) {
	rows, err := q.db.QueryContext(ctx, selectPortfolioProject+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []model.PortfolioProject
	for rows.Next() {
		p, err := scanPortfolioProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeletePortfolioProject removes a project. Returns the number of rows deleted.
func (q *Queries) DeletePortfolioProject(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM portfolio_projects WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListPortfolioImageURLs returns every image URL referenced by a project.
func (q *Queries) ListPortfolioImageURLs(ctx context.Context) ([]string, error) {
	before, err := q.listURLs(ctx, `SELECT before_image_url FROM portfolio_projects`)
	if err != nil {
		return nil, err
	}
	after, err := q.listURLs(ctx, `SELECT after_image_url FROM portfolio_projects`)
	if err != nil {
		return nil, err
	}
	return append(before, after...), nil
}

const selectPortfolioProject = `
SELECT id, title, description, category, location, date, status, details,
       before_image_url, after_image_url,
       testimonial_content, testimonial_author, testimonial_role,
       created_by, created_at
FROM portfolio_projects`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPortfolioProject(row rowScanner) (model.PortfolioProject, error) {
	var p model.PortfolioProject
	var details, tContent, tAuthor, tRole string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Location,
		&p.Date, &p.Status, &details, &p.BeforeImageURL, &p.AfterImageURL,
		&tContent, &tAuthor, &tRole, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return model.PortfolioProject{}, err
	}
	p.Details = unmarshalStrings(details)
	if tContent != "" {
		p.Testimonial = &model.Testimonial{Content: tContent, Author: tAuthor, Role: tRole}
	}
	return p, nil
}
