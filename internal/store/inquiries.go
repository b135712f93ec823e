package store

import (
	"context"
	"time"

	"github.com/timhorst/horsthomes/internal/model"
)

// CreateContactMessageParams holds the fields for a contact submission.
type CreateContactMessageParams struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// CreateContactMessage inserts a contact submission and returns its id.
func (q *Queries) CreateContactMessage(ctx context.Context, p CreateContactMessageParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, phone, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Email, p.Phone, p.Message, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateQuoteRequestParams holds the fields for a quote request.
type CreateQuoteRequestParams struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	Timeline    string
	Budget      string
	Message     string
}

// CreateQuoteRequest inserts a quote request and returns its id.
func (q *Queries) CreateQuoteRequest(ctx context.Context, p CreateQuoteRequestParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO quote_requests (name, email, phone, project_type, timeline, budget, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Email, p.Phone, p.ProjectType, p.Timeline, p.Budget, p.Message, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListQuoteRequests returns all quote requests, newest first. Admin-only.
func (q *Queries) ListQuoteRequests(ctx context.Context) ([]model.QuoteRequest, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, email, phone, project_type, timeline, budget, message, created_at
		 FROM quote_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var reqs []model.QuoteRequest
	for rows.Next() {
		var r model.QuoteRequest
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.ProjectType,
			&r.Timeline, &r.Budget, &r.Message, &r.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// ListContactMessages returns all contact messages, newest first. Admin-only.
func (q *Queries) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, created_at
		 FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
