package core

import "encoding/json"

// RecommendedCourse is the output shape of a selected course.
type RecommendedCourse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CreditHours int    `json:"credit_hours"`
}

// Recommendation is the result of a single recommendation run.
type Recommendation struct {
	// Courses are ordered by the time they were added (retakes first).
	Courses []RecommendedCourse `json:"courses"`

	// TotalCredits never exceeds Ceiling.
	TotalCredits int `json:"total_credits"`

	// Ceiling is the resolved credit ceiling for the student's CGPA.
	Ceiling int `json:"ceiling"`

	// Explanations holds one entry per decision, in emission order.
	Explanations ExplanationLog `json:"explanations"`
}

// Pass identifies which sweep of the engine produced a decision.
type Pass int

const (
	PassRetake  Pass = 1
	PassGeneral Pass = 2
)

// Reason classifies a decision.
type Reason string

const (
	ReasonAlreadyPassed Reason = "already_passed"
	ReasonNotOffered    Reason = "not_offered"
	ReasonPrerequisites Reason = "unmet_prerequisites"
	ReasonCorequisites  Reason = "unmet_corequisites"
	ReasonCreditLimit   Reason = "credit_limit"
	ReasonRetake        Reason = "retake"
	ReasonEligible      Reason = "eligible"
)

// Accepted reports whether the reason belongs to an inclusion.
func (r Reason) Accepted() bool {
	return r == ReasonRetake || r == ReasonEligible
}

// Explanation is a single entry of the explanation trail.
type Explanation struct {
	Pass    Pass   `json:"pass"`
	Code    string `json:"code"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// ExplanationLog is an append-only, ordered record of decisions.
// Entries are never deduplicated or reordered.
// On the wire it is the ordered list of messages.
type ExplanationLog struct {
	entries []Explanation
}

func (l *ExplanationLog) Append(e Explanation) {
	l.entries = append(l.entries, e)
}

func (l ExplanationLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in emission order.
func (l ExplanationLog) Entries() []Explanation {
	cpy := make([]Explanation, len(l.entries))
	copy(cpy, l.entries)
	return cpy
}

// Messages returns the plain decision strings in emission order.
func (l ExplanationLog) Messages() []string {
	msgs := make([]string, len(l.entries))
	for i, e := range l.entries {
		msgs[i] = e.Message
	}
	return msgs
}

func (l ExplanationLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Messages())
}

// UnmarshalJSON restores a log from its message list. Pass, code and reason are not
// part of the wire format and stay empty.
func (l *ExplanationLog) UnmarshalJSON(data []byte) error {
	var msgs []string
	if err := json.Unmarshal(data, &msgs); err != nil {
		return err
	}
	l.entries = make([]Explanation, len(msgs))
	for i, m := range msgs {
		l.entries[i] = Explanation{Message: m}
	}
	return nil
}
