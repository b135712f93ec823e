package model

import (
	"database/sql"
	"time"
)

// Event levels for the event log.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	EventCategoryAuth    = "auth"
	EventCategoryContent = "content"
	EventCategorySystem  = "system"
)

// Event is a persisted log entry. WARN and ERROR application logs are also
// mirrored here by the logging handler.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IP        string
	Path      string
	Metadata  string // JSON-encoded key/value pairs
	CreatedAt time.Time
}
