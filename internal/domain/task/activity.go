package task

import "time"

// Well-known activity actions. Action is free text; these are the labels
// the services write.
const (
	ActivityCreated      = "Task created"
	ActivityUpdated      = "Task updated"
	ActivityCommentAdded = "Comment added"
)

// ActivityEntry is one immutable record in a task's append-only audit
// trail. Entries are never edited or removed individually; they disappear
// only when the owning task is deleted.
type ActivityEntry struct {
	ID          string
	TaskID      string
	Action      string
	PerformedBy string
	Timestamp   time.Time
	// Details is a free-form structured payload, e.g. old/new values for a
	// status change.
	Details map[string]any
}
