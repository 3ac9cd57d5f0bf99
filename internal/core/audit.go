package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "recommend", "explain")
	Action string `json:"action"`

	// Profile is the submitted student profile, unless profiles are redacted
	Profile *StudentProfile `json:"profile,omitempty"`

	// ProfileFingerprint identifies the profile even when it is redacted
	ProfileFingerprint string `json:"profile_fingerprint,omitempty"`

	// Decision details
	Ceiling      int      `json:"ceiling"`
	TotalCredits int      `json:"total_credits"`
	Courses      []string `json:"courses,omitempty"`
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`

	// KnowledgeVersion identifies the catalog/policy snapshot used
	KnowledgeVersion string `json:"knowledge_version,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// AuditLogReader is implemented by auditors that can be queried.
type AuditLogReader interface {
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
}
