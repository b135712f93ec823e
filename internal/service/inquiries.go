package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timhorst/horsthomes/internal/form"
	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/store"
)

// InquiryService persists visitor submissions from the contact and
// quote-request forms. These are public surfaces; no capability is required.
type InquiryService struct {
	queries *store.Queries
	events  *EventService
}

// NewInquiryService creates an InquiryService.
func NewInquiryService(db *sql.DB, events *EventService) *InquiryService {
	return &InquiryService{queries: store.New(db), events: events}
}

// SubmitContact validates and stores a contact message.
func (s *InquiryService) SubmitContact(ctx context.Context, input map[string]any) (int64, form.Errors, error) {
	values, errs := form.ContactSchema().Validate(input)
	if len(errs) > 0 {
		return 0, errs, nil
	}

	id, err := s.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name:    values.String("name"),
		Email:   values.String("email"),
		Phone:   values.String("phone"),
		Message: values.String("message"),
	})
	if err != nil {
		return 0, nil, fmt.Errorf("storing contact message: %w", err)
	}

	_ = s.events.LogContentEvent(ctx, model.EventLevelInfo, "contact message received", nil,
		map[string]any{"record_id": id})
	return id, nil, nil
}

// SubmitQuote validates and stores a quote request.
func (s *InquiryService) SubmitQuote(ctx context.Context, input map[string]any) (int64, form.Errors, error) {
	values, errs := form.QuoteSchema().Validate(input)
	if len(errs) > 0 {
		return 0, errs, nil
	}

	id, err := s.queries.CreateQuoteRequest(ctx, store.CreateQuoteRequestParams{
		Name:        values.String("name"),
		Email:       values.String("email"),
		Phone:       values.String("phone"),
		ProjectType: values.String("project_type"),
		Timeline:    values.String("timeline"),
		Budget:      values.String("budget"),
		Message:     values.String("message"),
	})
	if err != nil {
		return 0, nil, fmt.Errorf("storing quote request: %w", err)
	}

	_ = s.events.LogContentEvent(ctx, model.EventLevelInfo, "quote request received", nil,
		map[string]any{"record_id": id})
	return id, nil, nil
}

// ListContactMessages returns all contact messages, newest first.
func (s *InquiryService) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	return s.queries.ListContactMessages(ctx)
}

// ListQuoteRequests returns all quote requests, newest first.
func (s *InquiryService) ListQuoteRequests(ctx context.Context) ([]model.QuoteRequest, error) {
	return s.queries.ListQuoteRequests(ctx)
}
