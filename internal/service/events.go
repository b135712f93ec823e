package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/timhorst/horsthomes/internal/model"
	"github.com/timhorst/horsthomes/internal/store"
)

// EventService writes entries to the persistent event log.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates an EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{queries: store.New(db)}
}

// LogAuthEvent records an authentication event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *int64, ip, path string, metadata map[string]any) error {
	return s.log(ctx, level, model.EventCategoryAuth, message, userID, ip, path, metadata)
}

// LogContentEvent records a content mutation event.
func (s *EventService) LogContentEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.log(ctx, level, model.EventCategoryContent, message, userID, "", "", metadata)
}

func (s *EventService) log(ctx context.Context, level, category, message string, userID *int64, ip, path string, metadata map[string]any) error {
	var uid sql.NullInt64
	if userID != nil {
		uid = sql.NullInt64{Int64: *userID, Valid: true}
	}

	meta := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			meta = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:    level,
		Category: category,
		Message:  message,
		UserID:   uid,
		IP:       ip,
		Path:     path,
		Metadata: meta,
	})
	if err != nil {
		slog.Error("failed to write event log entry", "error", err, "message", message)
	}
	return err
}
