package audit

import (
	"encoding/json"
	"time"
)

// AuditID identifier type
type AuditID string

// DefaultProjectName is used when an audit is saved without a name.
const DefaultProjectName = "Untitled Project"

// Audit is an analysis a user saved together with its screenshot.
type Audit struct {
	ID           AuditID         `json:"id"`
	UserID       string          `json:"userId"`
	ProjectName  string          `json:"projectName"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Analysis     json.RawMessage `json:"analysis"`
	CreatedAt    time.Time       `json:"createdAt"`
}
