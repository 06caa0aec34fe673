package store

import "time"

// AnalyticsSnapshot is a persisted, point-in-time copy of a project's
// assembled analytics, stored as the serialized API payload.
type AnalyticsSnapshot struct {
	Project    string
	CapturedAt time.Time
	Payload    []byte
}
