package activity

import "time"

// EventType names a dashboard change.
type EventType string

const (
	TypeProjectCreated   EventType = "project_created"
	TypeProjectUpdated   EventType = "project_updated"
	TypeProjectDeleted   EventType = "project_deleted"
	TypeProgressLogged   EventType = "progress_logged"
	TypeImportCommitted  EventType = "import_committed"
	TypeProjectsSorted   EventType = "projects_sorted"
	TypeProjectsExported EventType = "projects_exported"
)

// Event is one journal line. ProjectID is empty for collection-wide events
// such as sorts, imports and exports.
type Event struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	Type      EventType `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"` // JSON object
	CreatedAt time.Time `json:"created_at"`
}

// Query selects journal events, newest first. Zero fields do not filter.
type Query struct {
	ProjectID string
	Type      EventType
	Since     time.Time
	Limit     int
	Offset    int
}
