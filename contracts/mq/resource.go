package mq

import (
	"fmt"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ResourceChangedPayload is published on the events exchange after a
// successful write. Data holds the wire representation of the record and
// is omitted for deletes.
type ResourceChangedPayload struct {
	Resource   string    `json:"resource"` // project / employee / task
	Action     string    `json:"action"`
	ID         int       `json:"id"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	TraceID    string    `json:"trace_id,omitempty"`
}

// RoutingKey returns e.g. "project.created".
func RoutingKey(resource, action string) string {
	return fmt.Sprintf("%s.%s", resource, action)
}
