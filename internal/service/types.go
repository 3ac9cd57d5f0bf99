package service

import "github.com/darmiel/advisor/internal/core"

type RecommendRequest struct {
	// Profile is the student's transcript state.
	Profile core.StudentProfile

	// CorrelationID identifies the request in audit logs.
	CorrelationID string
}

// ExplainRequest asks for the full evaluation trace of a profile.
type ExplainRequest RecommendRequest

type RecommendResponse struct {
	Recommendation *core.Recommendation

	// KnowledgeVersion identifies the catalog/policy snapshot that was used.
	KnowledgeVersion string
}

// PolicyView is the policy table together with the rules parsed from it.
type PolicyView struct {
	Rows  []core.PolicyRow  `json:"rows"`
	Rules core.CreditPolicy `json:"rules"`
}

// CatalogView is the course catalog of the current knowledge base.
type CatalogView struct {
	Courses  []core.Course `json:"courses"`
	Version  string        `json:"version"`
	Source   string        `json:"source"`
	LoadedAt string        `json:"loaded_at"`
}
